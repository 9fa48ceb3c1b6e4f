package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

func addPurge(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Purge(ro.appOptions()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Saved session removed.")
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
