package state

import "github.com/five82/marquee/internal/tmdb"

// MoviesState is the list screen slice: upcoming movies, genres and the local
// search over them.
type MoviesState struct {
	Upcoming      []tmdb.MovieSummary `json:"upcoming"`
	Genres        []tmdb.Genre        `json:"genres"`
	SearchQuery   string              `json:"searchQuery"`
	SearchResults []tmdb.MovieSummary `json:"searchResults"`
	Loading       bool                `json:"loading"`
	Error         string              `json:"error"`
}

// InitialMovies returns the empty movies slice.
func InitialMovies() MoviesState {
	return MoviesState{
		Upcoming:      []tmdb.MovieSummary{},
		Genres:        []tmdb.Genre{},
		SearchResults: []tmdb.MovieSummary{},
	}
}

// SetLoading toggles the list loading flag.
type SetLoading struct{ Loading bool }

// SetUpcoming replaces the upcoming list. A nil list stores an empty one.
type SetUpcoming struct{ Movies []tmdb.MovieSummary }

// SetGenres replaces the genre catalog. A nil list stores an empty one.
type SetGenres struct{ Genres []tmdb.Genre }

// SetSearchQuery replaces the search text.
type SetSearchQuery struct{ Query string }

// SetSearchResults replaces the filtered view of the upcoming list.
type SetSearchResults struct{ Movies []tmdb.MovieSummary }

// SetError records the last list error message.
type SetError struct{ Err string }

// ClearSearch resets the query and its results.
type ClearSearch struct{}

// Rehydrate replays a persisted movies slice at boot. A nil Movies only marks
// the store as rehydrated.
type Rehydrate struct{ Movies *MoviesState }

func (SetLoading) Slice() Slice       { return SliceMovies }
func (SetUpcoming) Slice() Slice      { return SliceMovies }
func (SetGenres) Slice() Slice        { return SliceMovies }
func (SetSearchQuery) Slice() Slice   { return SliceMovies }
func (SetSearchResults) Slice() Slice { return SliceMovies }
func (SetError) Slice() Slice         { return SliceMovies }
func (ClearSearch) Slice() Slice      { return SliceMovies }
func (Rehydrate) Slice() Slice        { return SliceMovies }

func (SetLoading) Name() string       { return "movies/setLoading" }
func (SetUpcoming) Name() string      { return "movies/setUpcoming" }
func (SetGenres) Name() string        { return "movies/setGenres" }
func (SetSearchQuery) Name() string   { return "movies/setSearchQuery" }
func (SetSearchResults) Name() string { return "movies/setSearchResults" }
func (SetError) Name() string         { return "movies/setError" }
func (ClearSearch) Name() string      { return "movies/clearSearch" }
func (Rehydrate) Name() string        { return "persist/rehydrate" }

// ReduceMovies applies a movies action. It never mutates s and never leaves a
// nil slice behind. Actions for other slices return s normalized.
func ReduceMovies(s MoviesState, action Action) MoviesState {
	next := MoviesState{
		Upcoming:      s.Upcoming,
		Genres:        s.Genres,
		SearchQuery:   s.SearchQuery,
		SearchResults: s.SearchResults,
		Loading:       s.Loading,
		Error:         s.Error,
	}

	switch a := action.(type) {
	case SetLoading:
		next.Loading = a.Loading
	case SetUpcoming:
		next.Upcoming = cloneMovies(a.Movies)
		// Keep results a subset of the list they were filtered from.
		if next.SearchQuery != "" {
			next.SearchResults = FilterByTitle(next.Upcoming, next.SearchQuery)
		}
	case SetGenres:
		next.Genres = cloneGenres(a.Genres)
	case SetSearchQuery:
		next.SearchQuery = a.Query
		if a.Query == "" {
			next.SearchResults = []tmdb.MovieSummary{}
		}
	case SetSearchResults:
		next.SearchResults = cloneMovies(a.Movies)
		if next.SearchQuery == "" {
			next.SearchResults = []tmdb.MovieSummary{}
		}
	case SetError:
		next.Error = a.Err
	case ClearSearch:
		next.SearchQuery = ""
		next.SearchResults = []tmdb.MovieSummary{}
	case Rehydrate:
		if a.Movies != nil {
			next = *a.Movies
			next.Loading = false
			next.Upcoming = cloneMovies(next.Upcoming)
			next.Genres = cloneGenres(next.Genres)
			next.SearchResults = []tmdb.MovieSummary{}
			if next.SearchQuery != "" {
				next.SearchResults = FilterByTitle(next.Upcoming, next.SearchQuery)
			}
		}
	}

	if next.Upcoming == nil {
		next.Upcoming = []tmdb.MovieSummary{}
	}
	if next.Genres == nil {
		next.Genres = []tmdb.Genre{}
	}
	if next.SearchResults == nil {
		next.SearchResults = []tmdb.MovieSummary{}
	}
	return next
}

func (s MoviesState) clone() MoviesState {
	s.Upcoming = cloneMovies(s.Upcoming)
	s.Genres = cloneGenres(s.Genres)
	s.SearchResults = cloneMovies(s.SearchResults)
	return s
}

func cloneMovies(items []tmdb.MovieSummary) []tmdb.MovieSummary {
	dup := make([]tmdb.MovieSummary, len(items))
	copy(dup, items)
	return dup
}

func cloneGenres(items []tmdb.Genre) []tmdb.Genre {
	dup := make([]tmdb.Genre, len(items))
	copy(dup, items)
	return dup
}
