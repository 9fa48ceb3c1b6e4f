package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/tmdb"
)

// Column widths for the movie table.
const (
	markerWidth  = 2
	releaseWidth = 18
	ratingWidth  = 6
	genresWidth  = 26
	columnGap    = "  "
)

// listHeight is the number of movie rows that fit on screen.
func (m Model) listHeight() int {
	h := m.height - 3 // header, command bar, column titles
	if m.searchActive {
		h--
	}
	return max(h, 1)
}

// renderList renders the list screen for the current view.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	var lines []string
	if m.searchActive {
		lines = append(lines, m.search.View())
	}

	movies := m.snapshot.Movies
	switch m.listView() {
	case controller.ViewGenres:
		lines = append(lines, m.renderGenres(styles)...)
	case controller.ViewResults:
		empty := fmt.Sprintf("No upcoming titles match %q", strings.TrimSpace(m.search.Value()))
		lines = append(lines, m.renderMovieTable(movies.SearchResults, empty, styles)...)
	default:
		empty := "No upcoming movies"
		if movies.Loading {
			empty = "Loading upcoming movies..."
		}
		lines = append(lines, m.renderMovieTable(movies.Upcoming, empty, styles)...)
	}
	return strings.Join(lines, "\n")
}

// renderGenres shows the genre catalog while the query is too short to search.
func (m Model) renderGenres(styles Styles) []string {
	lines := []string{styles.MutedText.Render("Type at least 3 characters to search. Genres:")}
	genres := m.snapshot.Movies.Genres
	if len(genres) == 0 {
		return append(lines, styles.FaintText.Render("No genres loaded"))
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	wrapped := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Info)).
		Width(max(m.width, 20)).
		Render(strings.Join(names, "  ·  "))
	return append(lines, wrapped)
}

// tableColumns returns the title and genre column widths for the window.
func (m Model) tableColumns() (title, genres int) {
	if m.width >= 100 {
		genres = genresWidth
	}
	fixed := markerWidth + releaseWidth + ratingWidth + 2*len(columnGap)
	if genres > 0 {
		fixed += genres + len(columnGap)
	}
	return max(m.width-fixed, 12), genres
}

func (m Model) renderMovieTable(movies []tmdb.MovieSummary, empty string, styles Styles) []string {
	if len(movies) == 0 {
		return []string{styles.FaintText.Render(empty)}
	}

	titleW, genresW := m.tableColumns()
	head := []string{cell("", markerWidth) + cell("Title", titleW), cell("Release", releaseWidth), cell("Rating", ratingWidth)}
	if genresW > 0 {
		head = append(head, cell("Genres", genresW))
	}
	lines := []string{styles.MutedText.Bold(true).Render(strings.Join(head, columnGap))}

	h := m.listHeight()
	offset := 0
	if m.cursor >= h {
		offset = m.cursor - h + 1
	}
	end := min(len(movies), offset+h)
	for i := offset; i < end; i++ {
		lines = append(lines, m.renderMovieRow(movies[i], i == m.cursor, titleW, genresW, styles))
	}
	return lines
}

func (m Model) renderMovieRow(movie tmdb.MovieSummary, selected bool, titleW, genresW int, styles Styles) string {
	marker := cell("", markerWidth)
	if selected {
		marker = cell(">", markerWidth)
	}
	title := cell(movie.DisplayTitle(), titleW)
	release := cell(controller.FormatReleaseDate(movie.ReleaseDate), releaseWidth)
	rating := cell(formatRating(movie.VoteAverage), ratingWidth)
	genres := ""
	if genresW > 0 {
		genres = cell(controller.GenreNames(movie.GenreIDs, m.snapshot.Movies.Genres), genresW)
	}

	if selected {
		cols := []string{marker + title, release, rating}
		if genresW > 0 {
			cols = append(cols, genres)
		}
		return styles.Selected.Width(max(m.width, 1)).Render(strings.Join(cols, columnGap))
	}

	cols := []string{
		styles.AccentText.Render(marker) + styles.Text.Render(title),
		styles.MutedText.Render(release),
		styles.RatingStyle(movie.VoteAverage).Render(rating),
	}
	if genresW > 0 {
		cols = append(cols, styles.FaintText.Render(genres))
	}
	return strings.Join(cols, columnGap)
}
