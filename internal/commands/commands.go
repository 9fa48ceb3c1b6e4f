// Package commands builds the marquee command line.
package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

// rootOptions are flags shared by every command.
type rootOptions struct {
	configPath string
	prefsPath  string
	envFiles   []string
	refresh    time.Duration
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath:   o.configPath,
		PrefsPath:    o.prefsPath,
		EnvFiles:     o.envFiles,
		RefreshEvery: o.refresh,
	}
}

// New returns the root command. Without a subcommand it starts the TUI.
func New(ctx context.Context) *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Browse upcoming movies from TMDB in the terminal.",
		Long: `marquee lists upcoming movies from The Movie Database, searches them by
title and shows details for a single movie. Without a subcommand it starts
the interactive browser; the last session is restored on startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(ctx, ro.appOptions())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&ro.configPath, "config", "", "config file (default ~/.config/marquee/config.toml)")
	flags.StringVar(&ro.prefsPath, "prefs", "", "preferences file (default ~/.config/marquee/prefs.toml)")
	flags.StringSliceVar(&ro.envFiles, "env", nil, "dotenv files to load (default ./.env)")
	cmd.Flags().DurationVar(&ro.refresh, "refresh", 0, "UI refresh interval (default 1s)")

	addCommands(ctx, cmd, ro)
	return cmd
}

// addCommands registers every subcommand on topLevel.
func addCommands(ctx context.Context, topLevel *cobra.Command, ro *rootOptions) {
	addUpcoming(ctx, topLevel, ro)
	addGenres(ctx, topLevel, ro)
	addSearch(ctx, topLevel, ro)
	addShow(ctx, topLevel, ro)
	addLogs(topLevel, ro)
	addPurge(topLevel, ro)
}

// withEnv runs fn against a headless Env and closes it afterwards.
func withEnv(ro *rootOptions, fn func(env *app.Env) error) error {
	opts := ro.appOptions()
	opts.Ephemeral = true
	env, err := app.Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(env)
}
