package ui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/mockapi"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

// catalogFetcher serves a mock catalog without HTTP.
type catalogFetcher struct {
	cat mockapi.Catalog
}

func (f catalogFetcher) FetchUpcoming(context.Context) ([]tmdb.MovieSummary, error) {
	return append([]tmdb.MovieSummary(nil), f.cat.Upcoming...), nil
}

func (f catalogFetcher) FetchGenres(context.Context) ([]tmdb.Genre, error) {
	return append([]tmdb.Genre(nil), f.cat.Genres...), nil
}

func (f catalogFetcher) FetchMovie(_ context.Context, id int64) (*tmdb.MovieDetail, error) {
	d, ok := f.cat.Details[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return &d, nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type harness struct {
	store     *state.Store
	prefsPath string
}

func newModel(t *testing.T) (Model, harness) {
	t.Helper()
	store := &state.Store{}
	fetcher := catalogFetcher{cat: mockapi.SampleCatalog()}
	h := harness{store: store, prefsPath: filepath.Join(t.TempDir(), "prefs.toml")}
	m := New(Options{
		Context:       context.Background(),
		Store:         store,
		List:          controller.NewListController(store, fetcher, quietLogger()),
		Detail:        controller.NewDetailController(store, fetcher, quietLogger()),
		PrefsPath:     h.prefsPath,
		ShowImageURLs: true,
		Logger:        quietLogger(),
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, h
}

// readyModel returns a model past the rehydration gate with the list loaded.
func readyModel(t *testing.T) (Model, harness) {
	t.Helper()
	m, h := newModel(t)
	h.store.Dispatch(state.Rehydrate{})

	m, cmd := send(t, m, waitRehydratedCmd(context.Background(), h.store)())
	if !m.rehydrated {
		t.Fatalf("model not rehydrated")
	}
	m, cmd = send(t, m, cmd()) // list mounted
	m, _ = send(t, m, cmd())   // snapshot
	return m, h
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, keyRunes(string(r)))
	}
	return m
}

func TestModelShowsGateUntilRehydrated(t *testing.T) {
	m, h := newModel(t)

	if view := m.View(); !strings.Contains(view, "Restoring") {
		t.Fatalf("View() before rehydration = %q, want restore banner", view)
	}
	m, _ = send(t, m, keyRunes("/"))
	if m.searchActive {
		t.Fatalf("search opened before rehydration")
	}

	h.store.Dispatch(state.Rehydrate{})
	m, cmd := send(t, m, waitRehydratedCmd(context.Background(), h.store)())
	if cmd == nil {
		t.Fatalf("expected list mount command after rehydration")
	}
	if _, ok := cmd().(listMountedMsg); !ok {
		t.Fatalf("rehydration command did not mount the list")
	}
	if got := len(h.store.Snapshot().Movies.Upcoming); got != 4 {
		t.Fatalf("upcoming after mount = %d, want 4", got)
	}
	if view := m.View(); strings.Contains(view, "Restoring") {
		t.Fatalf("View() after rehydration still shows restore banner")
	}
}

func TestModelQuitsWhenRehydrationIsAbandoned(t *testing.T) {
	m, _ := newModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, cmd := send(t, m, waitRehydratedCmd(ctx, m.store)())
	if m.rehydrated {
		t.Fatalf("model marked rehydrated after cancellation")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("command = %T, want tea.QuitMsg", cmd())
	}
}

func TestModelListsUpcoming(t *testing.T) {
	m, _ := readyModel(t)

	view := m.View()
	for _, want := range []string{"The Batman", "March 1, 2022", "Upcoming: 4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModelCursorMovement(t *testing.T) {
	m, _ := readyModel(t)

	m, _ = send(t, m, keyRunes("j"))
	m, _ = send(t, m, keyRunes("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor after jj = %d, want 2", m.cursor)
	}
	m, _ = send(t, m, keyRunes("G"))
	if m.cursor != 3 {
		t.Fatalf("cursor after G = %d, want 3", m.cursor)
	}
	m, _ = send(t, m, keyRunes("j"))
	if m.cursor != 3 {
		t.Fatalf("cursor past end = %d, want 3", m.cursor)
	}
	m, _ = send(t, m, keyRunes("g"))
	if m.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", m.cursor)
	}
}

func TestModelSearchSwitchesViews(t *testing.T) {
	m, h := readyModel(t)

	m, _ = send(t, m, keyRunes("/"))
	if !m.searchActive {
		t.Fatalf("search not active after /")
	}
	if got := m.listView(); got != controller.ViewGenres {
		t.Fatalf("view with empty query = %v, want %v", got, controller.ViewGenres)
	}

	m = typeText(t, m, "ba")
	if got := m.listView(); got != controller.ViewGenres {
		t.Fatalf("view for %q = %v, want %v", "ba", got, controller.ViewGenres)
	}
	if view := m.View(); !strings.Contains(view, "Science Fiction") {
		t.Fatalf("genre view missing catalog:\n%s", view)
	}

	m = typeText(t, m, "t")
	if got := m.listView(); got != controller.ViewResults {
		t.Fatalf("view for %q = %v, want %v", "bat", got, controller.ViewResults)
	}
	snap := h.store.Snapshot()
	if snap.Movies.SearchQuery != "bat" {
		t.Fatalf("stored query = %q, want %q", snap.Movies.SearchQuery, "bat")
	}
	movies := m.visibleMovies()
	if len(movies) != 1 || movies[0].ID != 414906 {
		t.Fatalf("visible movies = %+v, want only The Batman", movies)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchActive {
		t.Fatalf("search still active after esc")
	}
	if got := h.store.Snapshot().Movies.SearchQuery; got != "" {
		t.Fatalf("stored query after esc = %q, want empty", got)
	}
	if got := len(m.visibleMovies()); got != 4 {
		t.Fatalf("visible movies after esc = %d, want 4", got)
	}
}

func TestModelSearchResumesPersistedQuery(t *testing.T) {
	m, _ := readyModel(t)
	m.list.HandleSearch("uncha")

	m, _ = send(t, m, keyRunes("/"))
	if got := m.search.Value(); got != "uncha" {
		t.Fatalf("search input = %q, want persisted query", got)
	}
	if got := len(m.visibleMovies()); got != 1 {
		t.Fatalf("visible movies = %d, want 1", got)
	}
}

func TestModelOpensAndLeavesDetail(t *testing.T) {
	m, h := readyModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenDetail || m.detailID != 414906 {
		t.Fatalf("screen=%v id=%d, want detail for 414906", m.screen, m.detailID)
	}
	if view := m.View(); !strings.Contains(view, "Loading details") {
		t.Fatalf("detail view before load = %q, want loading", view)
	}

	m, cmd = send(t, m, cmd())
	m, _ = send(t, m, cmd())
	view := m.View()
	for _, want := range []string{"The Batman", "March 1, 2022", "image.tmdb.org"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenList {
		t.Fatalf("screen after esc = %v, want list", m.screen)
	}
	detail := h.store.Snapshot().Detail
	if detail.Movie != nil || detail.Loading || detail.Error != "" {
		t.Fatalf("detail after leaving = %+v, want cleared", detail)
	}
}

func TestModelDetailDiscardsAbandonedVisit(t *testing.T) {
	m, h := readyModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	// Leave before the fetch command ever runs.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	cmd()

	if detail := h.store.Snapshot().Detail; detail.Movie != nil {
		t.Fatalf("abandoned visit stored %+v", detail.Movie)
	}
	if m.detail.Current() != 0 {
		t.Fatalf("abandoned visit left a live session")
	}
}

func TestModelDetailShowsFetchError(t *testing.T) {
	m, h := readyModel(t)
	h.store.Dispatch(state.SetUpcoming{Movies: []tmdb.MovieSummary{{ID: 1, Title: "Missing"}}})
	m, _ = send(t, m, snapshotMsg(h.store.Snapshot()))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = send(t, m, cmd())
	m, _ = send(t, m, cmd())

	if view := m.View(); !strings.Contains(view, "Could not load this movie") {
		t.Fatalf("detail view missing error:\n%s", view)
	}
}

func TestModelTogglesImagesAndSavesPrefs(t *testing.T) {
	m, h := readyModel(t)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = send(t, m, cmd())
	m, _ = send(t, m, cmd())

	m, _ = send(t, m, keyRunes("i"))
	if m.showImages {
		t.Fatalf("images still shown after toggle")
	}
	if view := m.View(); strings.Contains(view, "image.tmdb.org") {
		t.Fatalf("image links rendered while hidden")
	}
	got := prefs.Load(h.prefsPath, quietLogger())
	if got.ShowImageURLs {
		t.Fatalf("saved prefs ShowImageURLs = true, want false")
	}
}

func TestModelCyclesThemeAndSavesPrefs(t *testing.T) {
	m, h := readyModel(t)

	m, _ = send(t, m, keyRunes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme after T = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(h.prefsPath, quietLogger()).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m, _ := readyModel(t)

	m, _ = send(t, m, keyRunes("?"))
	if !m.showHelp {
		t.Fatalf("help not shown after ?")
	}
	view := m.View()
	for _, want := range []string{"Keyboard Shortcuts", "Search titles", "Toggle image links"} {
		if !strings.Contains(view, want) {
			t.Fatalf("help missing %q", want)
		}
	}
	m, _ = send(t, m, keyRunes("x"))
	if m.showHelp {
		t.Fatalf("help still shown after key press")
	}
}

func TestModelTickRefreshesSnapshot(t *testing.T) {
	m, h := readyModel(t)
	h.store.Dispatch(state.SetUpcoming{Movies: []tmdb.MovieSummary{{ID: 9, Title: "Late Arrival"}}})

	_, cmd := send(t, m, tickMsg{})
	if cmd == nil {
		t.Fatalf("tick returned no command")
	}
	msgs, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("tick command = %T, want tea.BatchMsg", cmd())
	}
	var refreshed bool
	for _, c := range msgs {
		if c == nil {
			continue
		}
		if snap, ok := c().(snapshotMsg); ok {
			m, _ = send(t, m, snap)
			refreshed = true
			break
		}
	}
	if !refreshed {
		t.Fatalf("tick did not fetch a snapshot")
	}
	if view := m.View(); !strings.Contains(view, "Late Arrival") {
		t.Fatalf("View() missing refreshed movie")
	}
}
