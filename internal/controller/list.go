package controller

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

// ListView selects what the list screen renders.
type ListView int

const (
	ViewUpcoming ListView = iota
	ViewGenres
	ViewResults
)

func (v ListView) String() string {
	switch v {
	case ViewUpcoming:
		return "upcoming"
	case ViewGenres:
		return "genres"
	case ViewResults:
		return "results"
	default:
		return "unknown"
	}
}

// minResultsQuery is the shortest query (in runes) that shows search results
// instead of the genre catalog.
const minResultsQuery = 3

// ViewFor picks the list view for the current search mode and query.
func ViewFor(searchActive bool, query string) ListView {
	if !searchActive {
		return ViewUpcoming
	}
	if utf8.RuneCountInString(query) < minResultsQuery {
		return ViewGenres
	}
	return ViewResults
}

// ListController drives the list screen: the initial catalog load and local
// search.
type ListController struct {
	store   *state.Store
	fetcher tmdb.Fetcher
	log     logrus.FieldLogger

	mu      sync.Mutex
	mounted bool
}

// NewListController wires a list controller to store and fetcher.
func NewListController(store *state.Store, fetcher tmdb.Fetcher, logger logrus.FieldLogger) *ListController {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ListController{
		store:   store,
		fetcher: fetcher,
		log:     logger.WithField("component", "list"),
	}
}

// Mount loads the upcoming list and then the genre catalog. It runs once per
// screen mount; later calls return immediately until Unmount. Fetch errors
// are logged and dropped, and the loading flag is always cleared.
func (c *ListController) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.mu.Unlock()

	c.store.Dispatch(state.SetLoading{Loading: true})
	defer c.store.Dispatch(state.SetLoading{Loading: false})

	upcoming, err := c.fetcher.FetchUpcoming(ctx)
	if err != nil {
		c.log.WithError(err).Warn("fetch upcoming failed")
	} else {
		c.store.Dispatch(state.SetUpcoming{Movies: upcoming})
		c.log.WithField("count", len(upcoming)).Debug("upcoming loaded")
	}

	genres, err := c.fetcher.FetchGenres(ctx)
	if err != nil {
		c.log.WithError(err).Warn("fetch genres failed")
		return
	}
	c.store.Dispatch(state.SetGenres{Genres: genres})
	c.log.WithField("count", len(genres)).Debug("genres loaded")
}

// Unmount re-arms Mount for the next visit.
func (c *ListController) Unmount() {
	c.mu.Lock()
	c.mounted = false
	c.mu.Unlock()
}

// Mounted reports whether Mount has run since the last Unmount.
func (c *ListController) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// HandleSearch records query and filters the cached upcoming list by title.
// No network call is made.
func (c *ListController) HandleSearch(query string) {
	c.store.Dispatch(state.SetSearchQuery{Query: query})
	if query == "" {
		c.store.Dispatch(state.SetSearchResults{Movies: []tmdb.MovieSummary{}})
		return
	}
	results := state.FilterByTitle(c.store.Movies().Upcoming, query)
	c.store.Dispatch(state.SetSearchResults{Movies: results})
}

// ExitSearch leaves search mode and drops the query.
func (c *ListController) ExitSearch() {
	c.store.Dispatch(state.ClearSearch{})
}

// GenreNames maps genre ids to catalog names, skipping unknown ids.
func GenreNames(ids []int64, catalog []tmdb.Genre) string {
	byID := make(map[int64]string, len(catalog))
	for _, g := range catalog {
		byID[g.ID] = g.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
