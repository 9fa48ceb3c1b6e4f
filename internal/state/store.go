package state

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Slice names one part of the application state.
type Slice int

const (
	SliceMovies Slice = iota
	SliceDetail
)

func (s Slice) String() string {
	switch s {
	case SliceMovies:
		return "movies"
	case SliceDetail:
		return "movieDetail"
	default:
		return "unknown"
	}
}

// Action is a state transition. The concrete action types in this package are
// the only way state changes.
type Action interface {
	Slice() Slice
	Name() string
}

// Snapshot is a copy of the whole application state at one version.
type Snapshot struct {
	Movies      MoviesState
	Detail      DetailState
	Version     uint64
	Rehydrated  bool
	LastUpdated time.Time
}

// Listener observes dispatched actions together with the resulting snapshot.
type Listener func(action Action, snap Snapshot)

// Store is the application state container. The zero value is ready to use.
type Store struct {
	// dispatchMu serializes Dispatch, including listener notification, so
	// listeners see changes in dispatch order. Listeners must not Dispatch.
	dispatchMu sync.Mutex

	mu       sync.RWMutex
	snapshot Snapshot
	inited   bool
	ready    chan struct{}

	subsMu    sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Dispatch reduces action into the state and notifies listeners.
func (s *Store) Dispatch(action Action) {
	if action == nil {
		return
	}
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.initLocked()
	s.snapshot.Movies = ReduceMovies(s.snapshot.Movies, action)
	s.snapshot.Detail = ReduceDetail(s.snapshot.Detail, action)
	s.snapshot.Version++
	s.snapshot.LastUpdated = time.Now()
	if _, ok := action.(Rehydrate); ok && !s.snapshot.Rehydrated {
		s.snapshot.Rehydrated = true
		close(s.ready)
	}
	snap := s.copyLocked()
	s.mu.Unlock()

	for _, fn := range s.listenerList() {
		fn(action, snap)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	return s.copyLocked()
}

// Movies returns a copy of the movies slice.
func (s *Store) Movies() MoviesState {
	return s.Snapshot().Movies
}

// Detail returns a copy of the detail slice.
func (s *Store) Detail() DetailState {
	return s.Snapshot().Detail
}

// Subscribe registers fn for every subsequent Dispatch and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.listeners, id)
	}
}

// WaitRehydrated blocks until a Rehydrate action has been dispatched or ctx
// is done.
func (s *Store) WaitRehydrated(ctx context.Context) error {
	s.mu.Lock()
	s.initLocked()
	ready := s.ready
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) initLocked() {
	if s.inited {
		return
	}
	s.snapshot.Movies = InitialMovies()
	s.ready = make(chan struct{})
	s.inited = true
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	snap.Movies = s.snapshot.Movies.clone()
	snap.Detail.Movie = cloneDetail(s.snapshot.Detail.Movie)
	return snap
}

func (s *Store) listenerList() []Listener {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
