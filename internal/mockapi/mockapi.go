// Package mockapi serves a canned TMDB catalog over HTTP for local runs and
// tests. Routes mirror the real v3 API under an optional prefix.
package mockapi

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/five82/marquee/internal/tmdb"
)

// Catalog is the data the fixture server answers with.
type Catalog struct {
	// APIKey, when set, is required on every request. Mismatches get a
	// TMDB-shaped 401.
	APIKey   string                     `json:"api_key"`
	Upcoming []tmdb.MovieSummary        `json:"upcoming"`
	Genres   []tmdb.Genre               `json:"genres"`
	Details  map[int64]tmdb.MovieDetail `json:"details"`
}

// LoadCatalog reads a catalog from a JSON file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return cat, nil
}

// SampleCatalog returns a small built-in catalog.
func SampleCatalog() Catalog {
	genres := []tmdb.Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
		{ID: 35, Name: "Comedy"},
		{ID: 18, Name: "Drama"},
		{ID: 878, Name: "Science Fiction"},
	}
	upcoming := []tmdb.MovieSummary{
		{ID: 414906, Title: "The Batman", ReleaseDate: "2022-03-01", BackdropPath: "/b0PlSFdDwbyK0cf5RxwDpaOJQvQ.jpg", PosterPath: "/74xTEgt7R36Fpooo50r9T25onhq.jpg", VoteAverage: 7.7, GenreIDs: []int64{28, 18}, Overview: "Batman ventures into Gotham City's underworld."},
		{ID: 634649, Title: "Spider-Man: No Way Home", ReleaseDate: "2021-12-15", BackdropPath: "/14QbnygCuTO0vl7CAFmPf1fgZfV.jpg", VoteAverage: 8.0, GenreIDs: []int64{28, 12, 878}, Overview: "Peter Parker's identity is revealed."},
		{ID: 335787, Title: "Uncharted", ReleaseDate: "2022-02-10", VoteAverage: 7.1, GenreIDs: []int64{28, 12}, Overview: "A street-smart thief recruited for a treasure hunt."},
		{ID: 568124, Title: "Encanto", ReleaseDate: "2021-11-24", VoteAverage: 7.7, GenreIDs: []int64{35}, Overview: "A family living in a magical house."},
	}
	details := make(map[int64]tmdb.MovieDetail, len(upcoming))
	for _, m := range upcoming {
		var gs []tmdb.Genre
		for _, id := range m.GenreIDs {
			for _, g := range genres {
				if g.ID == id {
					gs = append(gs, g)
				}
			}
		}
		details[m.ID] = tmdb.MovieDetail{
			ID:           m.ID,
			Title:        m.Title,
			Overview:     m.Overview,
			BackdropPath: m.BackdropPath,
			PosterPath:   m.PosterPath,
			ReleaseDate:  m.ReleaseDate,
			VoteAverage:  m.VoteAverage,
			Status:       "Released",
			Genres:       gs,
		}
	}
	return Catalog{Upcoming: upcoming, Genres: genres, Details: details}
}

// Options configure the router.
type Options struct {
	// Prefix mounts the API below a path such as "/3".
	Prefix string
	// Logging enables chi's request logger.
	Logging bool
}

// NewRouter builds the fixture HTTP handler.
func NewRouter(cat Catalog, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if opts.Logging {
		r.Use(middleware.Logger)
	}

	s := &server{cat: cat}
	api := func(r chi.Router) {
		r.Use(s.requireKey)
		r.Get("/movie/upcoming", s.handleUpcoming)
		r.Get("/genre/movie/list", s.handleGenres)
		r.Get("/movie/{id}", s.handleMovie)
	}

	prefix := "/" + strings.Trim(opts.Prefix, "/")
	if prefix == "/" {
		r.Group(api)
	} else {
		r.Route(prefix, api)
	}
	return r
}

type server struct {
	cat Catalog
}

func (s *server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cat.APIKey != "" && r.URL.Query().Get("api_key") != s.cat.APIKey {
			writeStatus(w, http.StatusUnauthorized, 7, "Invalid API key: You must be granted a valid key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleUpcoming(w http.ResponseWriter, _ *http.Request) {
	results := s.cat.Upcoming
	if results == nil {
		results = []tmdb.MovieSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":          1,
		"results":       results,
		"total_pages":   1,
		"total_results": len(results),
	})
}

func (s *server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	genres := s.cat.Genres
	if genres == nil {
		genres = []tmdb.Genre{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

func (s *server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeStatus(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}
	detail, ok := s.cat.Details[id]
	if !ok {
		writeStatus(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func writeStatus(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, map[string]any{
		"success":        false,
		"status_code":    code,
		"status_message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
