package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

// DefaultRefreshInterval is how often the model re-reads the store.
const DefaultRefreshInterval = time.Second

// screen is the active top-level screen.
type screen int

const (
	screenList screen = iota
	screenDetail
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	List          *controller.ListController
	Detail        *controller.DetailController
	ImageBaseURL  string
	ThemeName     string
	PrefsPath     string
	ShowImageURLs bool
	RefreshEvery  time.Duration
	Logger        logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *state.Store
	list         *controller.ListController
	detail       *controller.DetailController
	imageBase    string
	prefsPath    string
	refreshEvery time.Duration
	log          logrus.FieldLogger

	// UI state
	theme      Theme
	keys       keyMap
	width      int
	height     int
	ready      bool
	rehydrated bool
	screen     screen
	showHelp   bool
	showImages bool

	// Data state
	snapshot state.Snapshot

	// List state
	searchActive bool
	search       textinput.Model
	cursor       int

	// Detail state
	detailID       int64
	detailCancel   context.CancelFunc
	detailViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	imageBase := strings.TrimSpace(opts.ImageBaseURL)
	if imageBase == "" {
		imageBase = tmdb.DefaultImageBaseURL
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search upcoming titles"
	search.CharLimit = 64

	return Model{
		ctx:            ctx,
		store:          opts.Store,
		list:           opts.List,
		detail:         opts.Detail,
		imageBase:      imageBase,
		prefsPath:      opts.PrefsPath,
		refreshEvery:   refresh,
		log:            logger.WithField("component", "ui"),
		theme:          GetTheme(opts.ThemeName),
		keys:           DefaultKeyMap(),
		showImages:     opts.ShowImageURLs,
		search:         search,
		snapshot:       opts.Store.Snapshot(),
		detailViewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitRehydratedCmd(m.ctx, m.store),
		tickCmd(m.refreshEvery),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-6, 10)
		m.updateDetailViewport()
		return m, nil

	case rehydratedMsg:
		if msg.err != nil {
			// Context ended before the store was restored.
			return m, tea.Quit
		}
		m.rehydrated = true
		m.applySnapshot(m.store.Snapshot())
		return m, mountListCmd(m.ctx, m.list)

	case listMountedMsg:
		return m, fetchSnapshotCmd(m.store)

	case detailLoadedMsg:
		return m, fetchSnapshotCmd(m.store)

	case tickMsg:
		var cmds []tea.Cmd
		if m.rehydrated {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.refreshEvery))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}

	// Cursor blink and other input-internal messages.
	if m.searchActive {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if !m.rehydrated {
		return m.renderGate()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.screen == screenDetail {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderList())
	}
	return b.String()
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.cursor = clamp(m.cursor, 0, len(m.visibleMovies())-1)
	m.updateDetailViewport()
}

// handleKey routes keyboard input to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.leaveDetail()
		return m, tea.Quit
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if !m.rehydrated {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case m.screen == screenDetail:
		return m.handleDetailKey(msg)
	case m.searchActive:
		return m.handleSearchKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Search):
		return m, m.enterSearch()
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	default:
		m.moveCursor(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitSearch()
		return m, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.moveCursor(msg)
		return m, nil
	case tea.KeyEnter:
		return m.openSelected()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if query := m.search.Value(); query != before {
		m.list.HandleSearch(query)
		m.cursor = 0
		m.applySnapshot(m.store.Snapshot())
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveDetail()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.leaveDetail()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		m.updateDetailViewport()
		return m, nil
	case key.Matches(msg, m.keys.ToggleImages):
		m.showImages = !m.showImages
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) enterSearch() tea.Cmd {
	m.snapshot = m.store.Snapshot()
	m.searchActive = true
	m.cursor = 0
	m.search.SetValue(m.snapshot.Movies.SearchQuery)
	m.search.CursorEnd()
	return m.search.Focus()
}

func (m *Model) exitSearch() {
	m.searchActive = false
	m.search.Blur()
	m.search.SetValue("")
	m.list.ExitSearch()
	m.cursor = 0
	m.applySnapshot(m.store.Snapshot())
}

// openSelected switches to the detail screen for the highlighted movie.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	movies := m.visibleMovies()
	if len(movies) == 0 {
		return m, nil
	}
	movie := movies[clamp(m.cursor, 0, len(movies)-1)]

	ctx, cancel := context.WithCancel(m.ctx)
	m.screen = screenDetail
	m.detailID = movie.ID
	m.detailCancel = cancel
	m.snapshot.Detail = state.DetailState{Loading: true}
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	return m, mountDetailCmd(ctx, m.detail, movie.ID)
}

// leaveDetail ends the detail visit. Safe to call on the list screen.
func (m *Model) leaveDetail() {
	if m.screen != screenDetail {
		return
	}
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.detail.Unmount()
	m.screen = screenList
	m.detailID = 0
	m.applySnapshot(m.store.Snapshot())
}

func (m *Model) moveCursor(msg tea.KeyMsg) {
	count := len(m.visibleMovies())
	if count == 0 {
		m.cursor = 0
		return
	}
	page := max(m.listHeight(), 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= page
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += page
	}
	m.cursor = clamp(m.cursor, 0, count-1)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowImageURLs: m.showImages}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// listView is the list-screen view for the current search state.
func (m Model) listView() controller.ListView {
	return controller.ViewFor(m.searchActive, m.search.Value())
}

// visibleMovies returns the selectable rows of the list screen.
func (m Model) visibleMovies() []tmdb.MovieSummary {
	switch m.listView() {
	case controller.ViewUpcoming:
		return m.snapshot.Movies.Upcoming
	case controller.ViewResults:
		return m.snapshot.Movies.SearchResults
	default:
		return nil
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type rehydratedMsg struct{ err error }

type listMountedMsg struct{}

type detailLoadedMsg struct{ id int64 }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitRehydratedCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return rehydratedMsg{err: store.WaitRehydrated(ctx)}
	}
}

func mountListCmd(ctx context.Context, list *controller.ListController) tea.Cmd {
	return func() tea.Msg {
		list.Mount(ctx)
		return listMountedMsg{}
	}
}

func mountDetailCmd(ctx context.Context, detail *controller.DetailController, id int64) tea.Cmd {
	return func() tea.Msg {
		detail.Mount(ctx, id)
		return detailLoadedMsg{id: id}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	ctx := m.ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
