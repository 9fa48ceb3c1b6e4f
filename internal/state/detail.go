package state

import "github.com/five82/marquee/internal/tmdb"

// DetailState is the detail screen slice. Its content belongs to a single
// screen visit and is never persisted.
type DetailState struct {
	Movie   *tmdb.MovieDetail
	Loading bool
	Error   string
}

// SetDetailLoading toggles the detail loading flag.
type SetDetailLoading struct{ Loading bool }

// SetMovieDetail stores the loaded movie (nil for none) and clears any error.
type SetMovieDetail struct{ Movie *tmdb.MovieDetail }

// SetDetailError records a human-readable fetch failure.
type SetDetailError struct{ Err string }

// ClearMovieDetail resets the slice to its initial value.
type ClearMovieDetail struct{}

func (SetDetailLoading) Slice() Slice { return SliceDetail }
func (SetMovieDetail) Slice() Slice   { return SliceDetail }
func (SetDetailError) Slice() Slice   { return SliceDetail }
func (ClearMovieDetail) Slice() Slice { return SliceDetail }

func (SetDetailLoading) Name() string { return "movieDetail/setDetailLoading" }
func (SetMovieDetail) Name() string   { return "movieDetail/setMovieDetail" }
func (SetDetailError) Name() string   { return "movieDetail/setDetailError" }
func (ClearMovieDetail) Name() string { return "movieDetail/clearMovieDetail" }

// ReduceDetail applies a detail action without mutating s.
func ReduceDetail(s DetailState, action Action) DetailState {
	switch a := action.(type) {
	case SetDetailLoading:
		s.Loading = a.Loading
	case SetMovieDetail:
		s.Movie = cloneDetail(a.Movie)
		s.Error = ""
	case SetDetailError:
		s.Error = a.Err
	case ClearMovieDetail:
		return DetailState{}
	}
	return s
}

func cloneDetail(movie *tmdb.MovieDetail) *tmdb.MovieDetail {
	if movie == nil {
		return nil
	}
	dup := *movie
	dup.Genres = cloneGenres(movie.Genres)
	return &dup
}
