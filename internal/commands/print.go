package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/logtail"
	"github.com/five82/marquee/internal/tmdb"
)

const maxTitleWidth = 48

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

func printEmpty(out io.Writer, msg string) {
	_, _ = fmt.Fprintln(out, faint.Sprint(msg))
}

func printMovies(out io.Writer, movies []tmdb.MovieSummary, genres []tmdb.Genre) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxTitleWidth
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Release"), bold.Sprint("Rating"), bold.Sprint("Genres"))
	for _, m := range movies {
		tbl.AddRow(
			m.ID,
			m.DisplayTitle(),
			controller.FormatReleaseDate(m.ReleaseDate),
			ratingColor(m.VoteAverage).Sprint(formatRating(m.VoteAverage)),
			controller.GenreNames(m.GenreIDs, genres),
		)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func printGenres(out io.Writer, genres []tmdb.Genre) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Genre"))
	for _, g := range genres {
		tbl.AddRow(g.ID, g.Name)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

// printDetail prints one movie. An empty imageBase omits image links.
func printDetail(out io.Writer, m *tmdb.MovieDetail, imageBase string) {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = m.OriginalTitle
	}
	_, _ = fmt.Fprintln(out, bold.Sprint(title))
	if tagline := strings.TrimSpace(m.Tagline); tagline != "" {
		_, _ = fmt.Fprintln(out, faint.Sprint(tagline))
	}
	_, _ = fmt.Fprintln(out)

	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	addField := func(label string, value any) {
		if s := fmt.Sprint(value); strings.TrimSpace(s) != "" {
			tbl.AddRow(bold.Sprint(label), value)
		}
	}
	addField("ID", m.ID)
	if m.OriginalTitle != "" && m.OriginalTitle != title {
		addField("Original", m.OriginalTitle)
	}
	addField("Release", controller.FormatReleaseDate(m.ReleaseDate))
	if m.Runtime > 0 {
		addField("Runtime", fmt.Sprintf("%d min", m.Runtime))
	}
	addField("Status", m.Status)
	if m.VoteAverage > 0 {
		addField("Rating", ratingColor(m.VoteAverage).Sprintf("%s/10 (%d votes)", formatRating(m.VoteAverage), m.VoteCount))
	}
	addField("Genres", strings.Join(names, ", "))
	addField("Homepage", m.Homepage)
	addField("Overview", m.Overview)
	if imageBase != "" {
		if m.PosterPath != "" {
			addField("Poster", tmdb.ImageURL(imageBase, m.PosterPath))
		}
		if m.BackdropPath != "" {
			addField("Backdrop", tmdb.ImageURL(imageBase, m.BackdropPath))
		}
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func printLogEntries(out io.Writer, entries []logtail.Entry) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		if e.Raw != "" {
			tbl.AddRow("", "", "", e.Raw)
			continue
		}
		msg := e.Message
		if e.Error != "" {
			msg += " " + color.RedString("error=%s", e.Error)
		}
		if fields := e.FieldString(); fields != "" {
			msg += " " + faint.Sprint(fields)
		}
		ts := ""
		if !e.Time.IsZero() {
			ts = e.Time.Local().Format("2006-01-02 15:04:05")
		}
		tbl.AddRow(ts, levelColor(e.Level).Sprint(strings.ToUpper(e.Level.String())), e.Component, msg)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func formatRating(vote float64) string {
	if vote <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", vote)
}

func ratingColor(vote float64) *color.Color {
	switch {
	case vote >= 7:
		return color.New(color.FgGreen)
	case vote >= 5:
		return color.New(color.FgYellow)
	case vote > 0:
		return color.New(color.FgRed)
	default:
		return faint
	}
}

func levelColor(level logrus.Level) *color.Color {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.InfoLevel:
		return color.New(color.FgCyan)
	default:
		return faint
	}
}
