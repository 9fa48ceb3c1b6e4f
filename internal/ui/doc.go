// Package ui provides the terminal interface for browsing upcoming movies.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns only presentation state (cursor,
// focus, search input, theme); movie data lives in state.Store and is pulled
// in as snapshots, either on a refresh tick or right after a controller
// finishes work. Controllers do all fetching. The model never talks to TMDB.
//
// # Package Structure
//
//   - app.go: Model, message types, commands and Run
//   - list.go: Upcoming, genre and search result screens
//   - detail.go: Movie detail screen rendered into a viewport
//   - header.go: Status header and command bar
//   - help.go: Keyboard shortcut overlay
//   - theme.go, style_helpers.go: Colors and background-safe rendering
//   - keys.go: Key bindings
//
// # Event Flow
//
//  1. Init waits for the store to be rehydrated. Until then a restore banner
//     is shown and only quit keys are accepted.
//  2. Once restored, the list controller mounts and loads upcoming movies and
//     the genre catalog.
//  3. "/" opens search. Each edit dispatches a search; fewer than three
//     characters shows the genre catalog instead of results.
//  4. Enter opens the detail screen for the highlighted movie. Leaving it
//     unmounts the detail controller, which discards any late result.
//
// # Key Bindings
//
//   - /: Search titles
//   - enter: Open details
//   - esc: Leave search or go back
//   - j/k, g/G, ctrl+d/u: Navigate
//   - i: Toggle image links (detail)
//   - T: Cycle theme
//   - ?: Help
//   - q or ctrl+c: Quit
package ui
