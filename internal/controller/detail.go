package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

// DetailFallbackError is shown when a fetch fails without a message.
const DetailFallbackError = "Failed to load details"

// releaseLayouts are the date formats FormatReleaseDate understands.
var releaseLayouts = []string{"2006-01-02", time.RFC3339}

// FormatReleaseDate renders raw as a long date ("March 1, 2022"). Empty input
// gives "", and values that do not parse are returned unchanged.
func FormatReleaseDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return raw
}

// DetailController drives the detail screen for one movie at a time.
type DetailController struct {
	store   *state.Store
	fetcher tmdb.Fetcher
	log     logrus.FieldLogger

	// mu guards session and makes the liveness check atomic with the
	// dispatch it protects.
	mu      sync.Mutex
	session *detailSession
}

type detailSession struct {
	id     int64
	alive  bool
	cancel context.CancelFunc
}

// NewDetailController wires a detail controller to store and fetcher.
func NewDetailController(store *state.Store, fetcher tmdb.Fetcher, logger logrus.FieldLogger) *DetailController {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DetailController{
		store:   store,
		fetcher: fetcher,
		log:     logger.WithField("component", "detail"),
	}
}

// Mount opens a visit for movie id and loads it. Mount blocks until the fetch
// settles; results that arrive after Unmount (or after a newer Mount) are
// discarded.
func (c *DetailController) Mount(ctx context.Context, id int64) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	// A visit abandoned before its fetch started never opens.
	if ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	if c.session != nil {
		c.endLocked()
		c.store.Dispatch(state.ClearMovieDetail{})
	}
	sess := &detailSession{id: id, alive: true, cancel: cancel}
	c.session = sess
	c.mu.Unlock()

	c.dispatch(sess, state.SetDetailLoading{Loading: true})
	defer c.dispatch(sess, state.SetDetailLoading{Loading: false})

	movie, err := c.fetcher.FetchMovie(ctx, id)
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = DetailFallbackError
		}
		if c.dispatch(sess, state.SetDetailError{Err: msg}) {
			c.log.WithError(err).WithField("movie_id", id).Warn("fetch movie detail failed")
		}
		return
	}
	if c.dispatch(sess, state.SetMovieDetail{Movie: movie}) {
		c.log.WithField("movie_id", id).Debug("movie detail loaded")
	}
}

// Unmount ends the current visit and clears the detail slice.
func (c *DetailController) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.endLocked()
	}
	c.store.Dispatch(state.ClearMovieDetail{})
}

// Current returns the movie id of the live visit, or 0.
func (c *DetailController) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return c.session.id
}

func (c *DetailController) endLocked() {
	c.session.alive = false
	c.session.cancel()
	c.session = nil
}

// dispatch applies action only while sess is the live visit.
func (c *DetailController) dispatch(sess *detailSession, action state.Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !sess.alive {
		return false
	}
	c.store.Dispatch(action)
	return true
}
