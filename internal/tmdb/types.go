package tmdb

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// MovieSummary mirrors one entry of /movie/upcoming results.
type MovieSummary struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	BackdropPath  string  `json:"backdrop_path"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int64 `json:"genre_ids"`
}

// DisplayTitle prefers the localized title and falls back to the original one.
func (m MovieSummary) DisplayTitle() string {
	if title := strings.TrimSpace(m.Title); title != "" {
		return title
	}
	return strings.TrimSpace(m.OriginalTitle)
}

// Genre is a catalog genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetail mirrors /movie/{id}.
type MovieDetail struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Tagline       string  `json:"tagline"`
	Overview      string  `json:"overview"`
	BackdropPath  string  `json:"backdrop_path"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Runtime       int     `json:"runtime"`
	Status        string  `json:"status"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Homepage      string  `json:"homepage"`
	Genres        []Genre `json:"genres"`
}

// UpcomingResponse is the /movie/upcoming envelope. Results stays raw so a
// malformed field degrades to an empty list instead of failing the decode.
type UpcomingResponse struct {
	Page    int             `json:"page"`
	Results json.RawMessage `json:"results"`
}

// GenreListResponse is the /genre/movie/list envelope.
type GenreListResponse struct {
	Genres json.RawMessage `json:"genres"`
}

// detailPayload is MovieDetail with a lenient genres field.
type detailPayload struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	OriginalTitle string          `json:"original_title"`
	Tagline       string          `json:"tagline"`
	Overview      string          `json:"overview"`
	BackdropPath  string          `json:"backdrop_path"`
	PosterPath    string          `json:"poster_path"`
	ReleaseDate   string          `json:"release_date"`
	Runtime       int             `json:"runtime"`
	Status        string          `json:"status"`
	VoteAverage   float64         `json:"vote_average"`
	VoteCount     int             `json:"vote_count"`
	Homepage      string          `json:"homepage"`
	Genres        json.RawMessage `json:"genres"`
}

// apiError is the body TMDB returns alongside 4xx/5xx statuses.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// decodeList decodes raw as a JSON array of T. Anything that is not an array,
// or an array that fails to decode, yields an empty non-nil slice and ok=false.
func decodeList[T any](raw json.RawMessage) (items []T, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, false
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return []T{}, false
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

// ImageURL joins the CDN base with a relative image path. An empty path
// yields the bare base.
func ImageURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
