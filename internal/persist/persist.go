// Package persist mirrors the movies slice of the application state to a
// diskv key-value store and replays it at startup.
//
// The store holds one versioned root record under RootKey. Only the movies
// slice is whitelisted; the detail slice is screen-scoped and never written.
// Writes happen on a background goroutine and are coalesced, so Dispatch is
// never blocked on disk I/O.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/peterbourgon/diskv/v3"
	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/state"
)

const (
	// RootKey is the diskv key of the persisted root record.
	RootKey = "persist-root"
	// Version is the current root record schema version.
	Version = 1

	cacheSizeMax = 1024 * 1024 // 1MB
)

// Record is the persisted root document.
type Record struct {
	Version int               `json:"version"`
	Movies  state.MoviesState `json:"movies"`
}

// Persister owns the on-disk record for one store.
type Persister struct {
	d   *diskv.Diskv
	log logrus.FieldLogger

	mu      sync.Mutex
	latest  *state.MoviesState
	wake    chan struct{}
	stop    chan struct{}
	stopped chan struct{}

	writeMu     sync.Mutex
	unsubscribe func()
	closeOnce   sync.Once
}

// Open prepares the diskv store rooted at dir.
func Open(dir string, logger logrus.FieldLogger) (*Persister, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("persist dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create persist dir: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Persister{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      filepath.Join(dir, ".tmp"),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: cacheSizeMax,
		}),
		log:     logger.WithField("component", "persist"),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Load reads the root record. A missing record returns ok=false and no error.
func (p *Persister) Load() (rec Record, ok bool, err error) {
	if !p.d.Has(RootKey) {
		return Record{}, false, nil
	}
	data, err := p.d.Read(RootKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("read persisted state: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode persisted state: %w", err)
	}
	return rec, true, nil
}

// Rehydrate replays the persisted movies slice into store and opens the
// store's rehydration gate. The gate opens on every path, including a
// missing, outdated or unreadable record, so the UI can never hang on it.
func (p *Persister) Rehydrate(store *state.Store) error {
	rec, ok, err := p.Load()
	if err != nil {
		p.log.WithError(err).Warn("discarding unreadable persisted state")
		store.Dispatch(state.Rehydrate{})
		return err
	}
	if !ok {
		p.log.Debug("no persisted state")
		store.Dispatch(state.Rehydrate{})
		return nil
	}
	if rec.Version != Version {
		p.log.WithFields(logrus.Fields{"found": rec.Version, "want": Version}).Warn("ignoring persisted state from another version")
		store.Dispatch(state.Rehydrate{})
		return nil
	}
	movies := rec.Movies
	store.Dispatch(state.Rehydrate{Movies: &movies})
	p.log.WithField("upcoming", len(movies.Upcoming)).Info("state rehydrated")
	return nil
}

// Attach subscribes to store and starts the background writer. Every
// movies-slice change after Attach is mirrored to disk.
func (p *Persister) Attach(store *state.Store) {
	p.unsubscribe = store.Subscribe(func(action state.Action, snap state.Snapshot) {
		if action.Slice() != state.SliceMovies {
			return
		}
		if _, replay := action.(state.Rehydrate); replay {
			return
		}
		p.enqueue(snap.Movies)
	})
	go p.run()
}

func (p *Persister) enqueue(movies state.MoviesState) {
	p.mu.Lock()
	p.latest = &movies
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.stop:
			return
		case <-p.wake:
			if err := p.Flush(); err != nil {
				p.log.WithError(err).Warn("persist write failed")
			}
		}
	}
}

// Flush synchronously writes the most recent pending snapshot, if any.
func (p *Persister) Flush() error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	pending := p.latest
	p.latest = nil
	p.mu.Unlock()
	if pending == nil {
		return nil
	}
	return p.write(*pending)
}

func (p *Persister) write(movies state.MoviesState) error {
	data, err := json.Marshal(Record{Version: Version, Movies: movies})
	if err != nil {
		return fmt.Errorf("encode persisted state: %w", err)
	}
	if err := p.d.Write(RootKey, data); err != nil {
		return fmt.Errorf("write persisted state: %w", err)
	}
	p.log.WithField("bytes", len(data)).Debug("state persisted")
	return nil
}

// Purge deletes the persisted record.
func (p *Persister) Purge() error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	p.mu.Lock()
	p.latest = nil
	p.mu.Unlock()
	if !p.d.Has(RootKey) {
		return nil
	}
	if err := p.d.Erase(RootKey); err != nil {
		return fmt.Errorf("purge persisted state: %w", err)
	}
	return nil
}

// Close detaches from the store, stops the writer and flushes what is left.
func (p *Persister) Close() error {
	var err error
	p.closeOnce.Do(func() {
		if p.unsubscribe != nil {
			p.unsubscribe()
			close(p.stop)
			<-p.stopped
		}
		err = p.Flush()
	})
	return err
}
