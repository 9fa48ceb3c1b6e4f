package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/marquee/internal/tmdb"
)

func newClient(t *testing.T, cat Catalog, key string) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(NewRouter(cat, Options{Prefix: "/3"}))
	t.Cleanup(srv.Close)
	client, err := tmdb.NewClient(tmdb.Options{BaseURL: srv.URL + "/3", APIKey: key})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestRouter_ServesSampleCatalogThroughClient(t *testing.T) {
	cat := SampleCatalog()
	client := newClient(t, cat, "")
	ctx := context.Background()

	upcoming, err := client.FetchUpcoming(ctx)
	if err != nil {
		t.Fatalf("FetchUpcoming: %v", err)
	}
	if len(upcoming) != len(cat.Upcoming) || upcoming[0].Title != "The Batman" {
		t.Fatalf("upcoming = %#v", upcoming)
	}

	genres, err := client.FetchGenres(ctx)
	if err != nil {
		t.Fatalf("FetchGenres: %v", err)
	}
	if len(genres) != len(cat.Genres) {
		t.Fatalf("genres = %d, want %d", len(genres), len(cat.Genres))
	}

	detail, err := client.FetchMovie(ctx, 414906)
	if err != nil {
		t.Fatalf("FetchMovie: %v", err)
	}
	if detail.Title != "The Batman" || len(detail.Genres) != 2 || detail.Genres[0].Name != "Action" {
		t.Fatalf("detail = %#v", detail)
	}

	if _, err := client.FetchMovie(ctx, 1); !errors.Is(err, tmdb.ErrNotFound) {
		t.Fatalf("FetchMovie(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestRouter_EmptyCatalogServesEmptyCollections(t *testing.T) {
	client := newClient(t, Catalog{}, "")
	upcoming, err := client.FetchUpcoming(context.Background())
	if err != nil || upcoming == nil || len(upcoming) != 0 {
		t.Fatalf("FetchUpcoming = %#v, %v; want empty", upcoming, err)
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	cat := SampleCatalog()
	cat.APIKey = "secret"

	_, err := newClient(t, cat, "wrong").FetchUpcoming(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("err = %v, want 401 with status message", err)
	}

	if _, err := newClient(t, cat, "secret").FetchUpcoming(context.Background()); err != nil {
		t.Fatalf("FetchUpcoming with key: %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	body := `{"upcoming":[{"id":5,"title":"Five"}],"genres":[{"id":1,"name":"One"}],"details":{"5":{"id":5,"title":"Five"}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(cat.Upcoming) != 1 || cat.Details[5].Title != "Five" {
		t.Fatalf("catalog = %#v", cat)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("LoadCatalog(missing) returned nil error")
	}
}
