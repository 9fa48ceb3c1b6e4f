package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logtail"
)

func addLogs(topLevel *cobra.Command, ro *rootOptions) {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent log entries",
		Example: `
marquee logs
marquee logs --level warn --lines 200
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel, err := logrus.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			if err := config.LoadEnv(ro.envFiles...); err != nil {
				return err
			}
			cfg, err := config.Load(ro.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			raw, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return fmt.Errorf("read log %s: %w", cfg.LogFile, err)
			}
			entries := logtail.ParseLines(raw, minLevel)
			if len(entries) == 0 {
				printEmpty(cmd.OutOrStdout(), "No log entries.")
				return nil
			}
			printLogEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of trailing lines to read (0 for all)")
	cmd.Flags().StringVar(&level, "level", "info", "minimum level to show")
	topLevel.AddCommand(cmd)
}
