// Package state holds the application state for marquee and the reducers
// that are the only way to change it.
//
// # Overview
//
// The state is split into two slices:
//
//   - movies (MoviesState): upcoming list, genre catalog, search query and
//     results, loading flag and last error. This slice is persisted.
//   - movieDetail (DetailState): the movie currently open on the detail
//     screen, its loading flag and error. Ephemeral, never persisted.
//
// Each slice has a pure reducer (ReduceMovies, ReduceDetail). Reducers are
// total: every action yields a well-formed slice, nil payloads become empty
// collections, and nothing is aliased with the caller.
//
// # Store
//
// Store is the injected container that owns a Snapshot. Controllers change it
// only through Dispatch; readers take defensive copies with Snapshot.
//
//	Controllers                 Store                     Readers
//	┌──────────────┐   Dispatch   ┌───────────────┐  Snapshot  ┌─────────┐
//	│ list/detail  │────────────→ │ ReduceMovies  │──────────→ │ ui, cli │
//	└──────────────┘              │ ReduceDetail  │            └─────────┘
//	                              └──────┬────────┘
//	                                     │ Subscribe
//	                                     ↓
//	                              persist.Persister
//
// Dispatch is serialized, and listeners run after the state lock is released
// but before the next Dispatch starts, so they observe changes in order.
// A listener must not call Dispatch itself.
//
// # Rehydration Barrier
//
// A Rehydrate action replays the persisted movies slice and flips
// Snapshot.Rehydrated. WaitRehydrated blocks until that happens so readers
// never see pre-restore state.
//
// # Invariants
//
//   - SearchResults is always a subset of Upcoming.
//   - SearchResults is empty whenever SearchQuery is empty.
//   - SetMovieDetail always clears the detail error.
//   - ClearMovieDetail returns the detail slice to its zero value.
package state
