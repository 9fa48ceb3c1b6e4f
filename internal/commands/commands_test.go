package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/mockapi"
)

type fixture struct {
	dir    string
	config string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat := mockapi.SampleCatalog()
	cat.APIKey = "test-key"
	srv := httptest.NewServer(mockapi.NewRouter(cat, mockapi.Options{Prefix: "/3"}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("api_base_url = %q\ndata_dir = %q\nrequests_per_second = 0\n", srv.URL+"/3", filepath.Join(dir, "data"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvAPIBaseURL, "")
	return fixture{dir: dir, config: path}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{"--config", f.config, "--env", filepath.Join(f.dir, "none.env")}
	cmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	err := cmd.Execute()
	return out.String(), err
}

func TestUpcomingPrintsTable(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "upcoming")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	for _, want := range []string{"The Batman", "March 1, 2022", "Action, Drama", "Encanto"} {
		if !strings.Contains(out, want) {
			t.Fatalf("upcoming output missing %q:\n%s", want, out)
		}
	}
}

func TestGenresPrintsCatalog(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "genres")
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	if !strings.Contains(out, "Science Fiction") || !strings.Contains(out, "878") {
		t.Fatalf("genres output = %q", out)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{"match", []string{"search", "BAT"}, "The Batman", "Encanto"},
		{"multi_word", []string{"search", "no", "way"}, "Spider-Man", "The Batman"},
		{"short_query_shows_genres", []string{"search", "ba"}, "Genres:", "The Batman"},
		{"no_match", []string{"search", "zzz"}, "No upcoming titles match", "The Batman"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := f.run(t, tc.args...)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("output missing %q:\n%s", tc.want, out)
			}
			if strings.Contains(out, tc.notWant) {
				t.Fatalf("output unexpectedly contains %q:\n%s", tc.notWant, out)
			}
		})
	}
}

func TestShow(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "show", "414906", "--images")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"The Batman", "March 1, 2022", "Released", "image.tmdb.org/t/p/w500/74xTEgt7R36Fpooo50r9T25onhq.jpg"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.run(t, "show", "abc"); err == nil || !strings.Contains(err.Error(), "invalid movie id") {
		t.Fatalf("show abc err = %v, want invalid id", err)
	}
	if _, err := f.run(t, "show", "1"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("show 1 err = %v, want not found", err)
	}
}

func TestShowDoesNotTouchSavedSession(t *testing.T) {
	f := newFixture(t)

	if _, err := f.run(t, "search", "batman"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.dir, "data", "state")); !os.IsNotExist(err) {
		t.Fatalf("headless command created state dir (stat err = %v)", err)
	}
}

func TestLogsFiltersByLevel(t *testing.T) {
	f := newFixture(t)
	// The 404 above is logged at warn level.
	_, _ = f.run(t, "show", "1")

	out, err := f.run(t, "logs", "--level", "warn", "--lines", "0")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, "fetch movie detail failed") {
		t.Fatalf("logs missing warning:\n%s", out)
	}
	if strings.Contains(out, "marquee started") {
		t.Fatalf("logs contains info entries at warn level:\n%s", out)
	}

	if _, err := f.run(t, "logs", "--level", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestPurge(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "purge")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if !strings.Contains(out, "Saved session removed.") {
		t.Fatalf("purge output = %q", out)
	}
}
