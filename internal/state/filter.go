package state

import (
	"strings"

	"github.com/five82/marquee/internal/tmdb"
)

// FilterByTitle returns the movies whose Title contains query, ignoring case,
// in their original order. An empty query matches nothing.
func FilterByTitle(movies []tmdb.MovieSummary, query string) []tmdb.MovieSummary {
	out := []tmdb.MovieSummary{}
	if query == "" {
		return out
	}
	needle := strings.ToLower(query)
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			out = append(out, m)
		}
	}
	return out
}
