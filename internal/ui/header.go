package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/controller"
)

const logoText = "marquee"

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	movies := m.snapshot.Movies
	parts := []string{bg.Render(logoText, styles.Logo)}

	if movies.Loading {
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	}

	parts = append(parts,
		bg.Render("Upcoming:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(movies.Upcoming)), styles.Text),
	)
	if !compact {
		parts = append(parts,
			bg.Render("Genres:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(movies.Genres)), styles.Text),
		)
	}

	if m.screen == screenList && m.listView() == controller.ViewResults {
		matchStyle := styles.SuccessText
		if len(movies.SearchResults) == 0 {
			matchStyle = styles.MutedText
		}
		parts = append(parts,
			bg.Render("Matches:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(movies.SearchResults)), matchStyle),
		)
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.screen == screenDetail && m.snapshot.Detail.Error != "" {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.snapshot.Detail.Error, maxErr), styles.DangerText),
		)
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last store refresh.
func (m Model) formatTimestamp() string {
	updated := m.snapshot.LastUpdated
	if updated.IsZero() {
		return ""
	}
	timeStr := updated.Format("15:04:05")
	since := time.Since(updated)
	switch {
	case since < time.Minute:
		timeStr += " (now)"
	case since < time.Hour:
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return timeStr
}

// renderCommandBar renders the key hints for the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.screen == screenDetail:
		images := "Show links"
		if m.showImages {
			images = "Hide links"
		}
		commands = []cmd{
			{"esc", "Back"},
			{"j/k", "Scroll"},
			{"i", images},
			{"?", "More"},
		}
	case m.searchActive:
		commands = []cmd{
			{"esc", "Leave search"},
			{"up/down", "Navigate"},
			{"enter", "Open"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"enter", "Open"},
			{"j/k", "Navigate"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderGate is shown until persisted state has been restored.
func (m Model) renderGate() string {
	styles := m.theme.Styles()
	content := styles.Logo.Render(logoText) + "\n\n" +
		styles.WarningText.Render("Restoring previous session...")
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
