package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/tmdb"
)

// updateDetailViewport resizes the viewport and refreshes its content.
func (m *Model) updateDetailViewport() {
	m.detailViewport.Width = max(m.width-2, 10)
	m.detailViewport.Height = max(m.height-2, 3)
	if m.screen != screenDetail {
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent())
}

// renderDetail renders the detail screen.
func (m Model) renderDetail() string {
	return lipgloss.NewStyle().PaddingLeft(1).Render(m.detailViewport.View())
}

// renderDetailContent builds the scrollable body of the detail screen.
func (m Model) renderDetailContent() string {
	styles := m.theme.Styles()
	d := m.snapshot.Detail
	width := max(m.detailViewport.Width, 20)

	var b strings.Builder
	if d.Error != "" {
		b.WriteString(styles.DangerText.Render("Could not load this movie"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(d.Error))
		b.WriteString("\n")
	}

	mv := d.Movie
	if mv == nil {
		if d.Error == "" {
			b.WriteString(styles.WarningText.Render("Loading details..."))
		}
		return b.String()
	}
	if d.Error != "" {
		b.WriteString("\n")
	}

	title := mv.Title
	if strings.TrimSpace(title) == "" {
		title = mv.OriginalTitle
	}
	b.WriteString(styles.Title.Render(title))
	if mv.OriginalTitle != "" && mv.OriginalTitle != title {
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render("(" + mv.OriginalTitle + ")"))
	}
	b.WriteString("\n")
	if tagline := strings.TrimSpace(mv.Tagline); tagline != "" {
		b.WriteString(styles.MutedText.Italic(true).Render(tagline))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, row := range m.detailFacts(mv) {
		b.WriteString(styles.MutedText.Render(padRight(row.label, 10)))
		b.WriteString(row.style.Render(row.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	overview := strings.TrimSpace(mv.Overview)
	if overview == "" {
		b.WriteString(styles.FaintText.Render("No overview available."))
	} else {
		b.WriteString(styles.Text.Width(width).Render(overview))
	}
	b.WriteString("\n")

	if m.showImages {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("Images"))
		b.WriteString("\n")
		b.WriteString(m.imageLine("Poster", mv.PosterPath, styles))
		b.WriteString(m.imageLine("Backdrop", mv.BackdropPath, styles))
	}
	return b.String()
}

type detailFact struct {
	label string
	value string
	style lipgloss.Style
}

func (m Model) detailFacts(mv *tmdb.MovieDetail) []detailFact {
	styles := m.theme.Styles()
	var facts []detailFact
	add := func(label, value string, style lipgloss.Style) {
		if strings.TrimSpace(value) == "" {
			return
		}
		facts = append(facts, detailFact{label: label, value: value, style: style})
	}

	add("Release", controller.FormatReleaseDate(mv.ReleaseDate), styles.Text)
	add("Runtime", formatRuntime(mv.Runtime), styles.Text)
	add("Status", mv.Status, styles.InfoText)

	rating := formatRating(mv.VoteAverage)
	if mv.VoteAverage > 0 {
		rating = fmt.Sprintf("%s/10 (%d votes)", rating, mv.VoteCount)
	}
	add("Rating", rating, styles.RatingStyle(mv.VoteAverage))

	names := make([]string, 0, len(mv.Genres))
	for _, g := range mv.Genres {
		names = append(names, g.Name)
	}
	add("Genres", strings.Join(names, ", "), styles.Text)
	add("Homepage", mv.Homepage, styles.AccentText)
	return facts
}

func (m Model) imageLine(label, path string, styles Styles) string {
	value := styles.FaintText.Render("none")
	if strings.TrimSpace(path) != "" {
		value = styles.InfoText.Render(tmdb.ImageURL(m.imageBase, path))
	}
	return styles.MutedText.Render(padRight(label, 10)) + value + "\n"
}
