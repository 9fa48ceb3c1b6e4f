package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/controller"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/persist"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/marquee/prefs.toml
	EnvFiles   []string // dotenv files; empty reads ./.env when present
	// RefreshEvery is the UI snapshot interval; zero uses the UI default.
	RefreshEvery time.Duration
	// Ephemeral skips the persisted store. Headless commands use it so
	// they never overwrite the interactive session.
	Ephemeral bool
}

// Env is the wired runtime shared by the TUI and the headless commands.
type Env struct {
	Config config.Config
	Log    *logrus.Logger
	Store  *state.Store
	Client *tmdb.Client
	List   *controller.ListController
	Detail *controller.DetailController

	persister *persist.Persister
}

// Setup loads configuration, starts logging and wires the store, client,
// persistence and controllers. The returned Env has a rehydrated store.
// Callers must Close it.
func Setup(opts Options) (*Env, error) {
	if err := config.LoadEnv(opts.EnvFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Init(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logger := logging.Get()

	client, err := tmdb.NewClient(tmdb.Options{
		BaseURL:           cfg.APIBaseURL,
		APIKey:            cfg.APIKey,
		Language:          cfg.Language,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		_ = logging.Close()
		return nil, fmt.Errorf("init tmdb client: %w", err)
	}

	env := &Env{
		Config: cfg,
		Log:    logger,
		Store:  &state.Store{},
		Client: client,
	}

	if opts.Ephemeral {
		env.Store.Dispatch(state.Rehydrate{})
	} else {
		p, err := persist.Open(cfg.StateDir(), logger)
		if err != nil {
			_ = logging.Close()
			return nil, fmt.Errorf("open state: %w", err)
		}
		// Rehydrate logs and opens the gate on its own; a bad record is
		// overwritten by the next write.
		_ = p.Rehydrate(env.Store)
		p.Attach(env.Store)
		env.persister = p
	}

	env.List = controller.NewListController(env.Store, client, logger)
	env.Detail = controller.NewDetailController(env.Store, client, logger)
	logger.WithFields(logrus.Fields{
		"api":       cfg.APIBaseURL,
		"ephemeral": opts.Ephemeral,
	}).Info("marquee started")
	return env, nil
}

// Close flushes persisted state and releases the log file.
func (e *Env) Close() error {
	var firstErr error
	if e.persister != nil {
		if err := e.persister.Close(); err != nil {
			e.Log.WithError(err).Warn("final state flush failed")
			firstErr = err
		}
	}
	if err := logging.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Run boots the marquee TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Ephemeral = false
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath, env.Log)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:       ctx,
		Store:         env.Store,
		List:          env.List,
		Detail:        env.Detail,
		ImageBaseURL:  env.Config.ImageBaseURL,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     prefsPath,
		ShowImageURLs: userPrefs.ShowImageURLs,
		RefreshEvery:  opts.RefreshEvery,
		Logger:        env.Log,
	})
}

// Purge deletes the persisted session without touching the network.
func Purge(opts Options) error {
	if err := config.LoadEnv(opts.EnvFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	p, err := persist.Open(cfg.StateDir(), logging.Get())
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	return p.Purge()
}
