package state

import (
	"reflect"
	"testing"

	"github.com/five82/marquee/internal/tmdb"
)

func sampleUpcoming() []tmdb.MovieSummary {
	return []tmdb.MovieSummary{
		{ID: 1, Title: "Batman"},
		{ID: 2, Title: "Superman"},
		{ID: 3, Title: "The BATTLE"},
		{ID: 4},
	}
}

func TestReduceMovies_NilPayloadsYieldDefaults(t *testing.T) {
	s := ReduceMovies(MoviesState{}, SetUpcoming{})
	if s.Upcoming == nil || len(s.Upcoming) != 0 {
		t.Fatalf("SetUpcoming(nil) upcoming = %#v, want empty", s.Upcoming)
	}
	s = ReduceMovies(s, SetGenres{})
	if s.Genres == nil || len(s.Genres) != 0 {
		t.Fatalf("SetGenres(nil) genres = %#v, want empty", s.Genres)
	}
	s = ReduceMovies(s, SetSearchResults{})
	if s.SearchResults == nil || len(s.SearchResults) != 0 {
		t.Fatalf("SetSearchResults(nil) results = %#v, want empty", s.SearchResults)
	}
	s = ReduceMovies(s, SetSearchQuery{})
	if s.SearchQuery != "" {
		t.Fatalf("SetSearchQuery(zero) query = %q, want empty", s.SearchQuery)
	}
}

func TestReduceMovies_EmptyQueryAlwaysClearsResults(t *testing.T) {
	s := ReduceMovies(InitialMovies(), SetUpcoming{Movies: sampleUpcoming()})
	s = ReduceMovies(s, SetSearchQuery{Query: "bat"})
	s = ReduceMovies(s, SetSearchResults{Movies: FilterByTitle(s.Upcoming, "bat")})
	if len(s.SearchResults) != 2 {
		t.Fatalf("results = %#v, want 2 matches", s.SearchResults)
	}

	s = ReduceMovies(s, SetSearchQuery{Query: ""})
	if len(s.SearchResults) != 0 {
		t.Fatalf("results after empty query = %#v, want empty", s.SearchResults)
	}

	// Results cannot be set while the query is empty.
	s = ReduceMovies(s, SetSearchResults{Movies: sampleUpcoming()})
	if len(s.SearchResults) != 0 {
		t.Fatalf("results with empty query = %#v, want empty", s.SearchResults)
	}
}

func TestReduceMovies_SetUpcomingIsIdempotent(t *testing.T) {
	once := ReduceMovies(InitialMovies(), SetUpcoming{Movies: sampleUpcoming()})
	twice := ReduceMovies(once, SetUpcoming{Movies: sampleUpcoming()})
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("SetUpcoming twice = %#v, want %#v", twice, once)
	}
}

func TestReduceMovies_SetUpcomingKeepsResultsSubset(t *testing.T) {
	s := ReduceMovies(InitialMovies(), SetUpcoming{Movies: sampleUpcoming()})
	s = ReduceMovies(s, SetSearchQuery{Query: "man"})
	s = ReduceMovies(s, SetSearchResults{Movies: FilterByTitle(s.Upcoming, "man")})

	s = ReduceMovies(s, SetUpcoming{Movies: []tmdb.MovieSummary{{ID: 2, Title: "Superman"}}})
	if len(s.SearchResults) != 1 || s.SearchResults[0].ID != 2 {
		t.Fatalf("results after new upcoming = %#v, want only Superman", s.SearchResults)
	}
}

func TestReduceMovies_ClearSearchAndMisc(t *testing.T) {
	s := ReduceMovies(InitialMovies(), SetUpcoming{Movies: sampleUpcoming()})
	s = ReduceMovies(s, SetSearchQuery{Query: "bat"})
	s = ReduceMovies(s, SetSearchResults{Movies: FilterByTitle(s.Upcoming, "bat")})
	s = ReduceMovies(s, SetLoading{Loading: true})
	s = ReduceMovies(s, SetError{Err: "boom"})
	s = ReduceMovies(s, ClearSearch{})

	if s.SearchQuery != "" || len(s.SearchResults) != 0 {
		t.Fatalf("after ClearSearch query=%q results=%#v, want empty", s.SearchQuery, s.SearchResults)
	}
	if !s.Loading || s.Error != "boom" || len(s.Upcoming) != 4 {
		t.Fatalf("ClearSearch touched unrelated fields: %#v", s)
	}
}

func TestReduceMovies_IgnoresDetailActions(t *testing.T) {
	in := ReduceMovies(InitialMovies(), SetUpcoming{Movies: sampleUpcoming()})
	out := ReduceMovies(in, SetDetailError{Err: "x"})
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("detail action changed movies slice: %#v", out)
	}
}

func TestReduceMovies_RehydrateResetsLoadingAndRederivesResults(t *testing.T) {
	persisted := MoviesState{
		Upcoming:      sampleUpcoming(),
		SearchQuery:   "super",
		SearchResults: []tmdb.MovieSummary{{ID: 99, Title: "stale"}},
		Loading:       true,
	}
	s := ReduceMovies(InitialMovies(), Rehydrate{Movies: &persisted})
	if s.Loading {
		t.Fatal("rehydrated Loading = true, want false")
	}
	if len(s.SearchResults) != 1 || s.SearchResults[0].ID != 2 {
		t.Fatalf("rehydrated results = %#v, want [Superman]", s.SearchResults)
	}
	if s.Genres == nil {
		t.Fatal("rehydrated Genres = nil, want empty")
	}

	same := ReduceMovies(s, Rehydrate{})
	if !reflect.DeepEqual(s, same) {
		t.Fatal("Rehydrate{} without payload changed the slice")
	}
}

func TestFilterByTitle(t *testing.T) {
	upcoming := []tmdb.MovieSummary{{ID: 1, Title: "Batman"}, {ID: 2, Title: "Superman"}}

	got := FilterByTitle(upcoming, "bat")
	want := []tmdb.MovieSummary{{ID: 1, Title: "Batman"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterByTitle(bat) = %#v, want %#v", got, want)
	}

	cases := []struct {
		query string
		want  []int64
	}{
		{"", nil},
		{"BAT", []int64{1, 3}},
		{"man", []int64{1, 2}},
		{"zzz", nil},
		{" ", []int64{3}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := FilterByTitle(sampleUpcoming(), tc.query)
			if got == nil {
				t.Fatal("FilterByTitle returned nil, want non-nil")
			}
			var ids []int64
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("FilterByTitle(%q) ids = %v, want %v", tc.query, ids, tc.want)
			}
		})
	}
}

func TestReduceDetail(t *testing.T) {
	movie := &tmdb.MovieDetail{ID: 42, Title: "Answer"}

	s := ReduceDetail(DetailState{}, SetDetailLoading{Loading: true})
	s = ReduceDetail(s, SetDetailError{Err: "Network Error"})
	if !s.Loading || s.Error != "Network Error" {
		t.Fatalf("detail = %#v, want loading with error", s)
	}

	s = ReduceDetail(s, SetMovieDetail{Movie: movie})
	if s.Error != "" || s.Movie == nil || s.Movie.ID != 42 {
		t.Fatalf("SetMovieDetail = %#v, want movie 42 and cleared error", s)
	}

	s = ReduceDetail(s, SetDetailError{Err: "again"})
	s = ReduceDetail(s, SetMovieDetail{Movie: nil})
	if s.Error != "" || s.Movie != nil {
		t.Fatalf("SetMovieDetail(nil) = %#v, want nil movie and cleared error", s)
	}
}

func TestReduceDetail_ClearReturnsInitialAfterAnySequence(t *testing.T) {
	sequences := [][]Action{
		{},
		{SetMovieDetail{Movie: &tmdb.MovieDetail{ID: 1}}},
		{SetDetailError{Err: "x"}, SetDetailLoading{Loading: true}},
		{SetDetailLoading{Loading: true}, SetMovieDetail{Movie: &tmdb.MovieDetail{ID: 2}}, SetDetailError{Err: "y"}},
	}
	for i, seq := range sequences {
		s := DetailState{}
		for _, a := range seq {
			s = ReduceDetail(s, a)
		}
		s = ReduceDetail(s, ClearMovieDetail{})
		if !reflect.DeepEqual(s, DetailState{}) {
			t.Fatalf("sequence %d: after clear = %#v, want initial", i, s)
		}
	}
}
