package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

func addShow(ctx context.Context, topLevel *cobra.Command, ro *rootOptions) {
	var images bool

	cmd := &cobra.Command{
		Use:     "show ID",
		Short:   "Show details for one movie",
		Example: "marquee show 414906",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			return withEnv(ro, func(env *app.Env) error {
				env.Detail.Mount(ctx, id)
				defer env.Detail.Unmount()

				detail := env.Store.Snapshot().Detail
				if detail.Error != "" {
					return errors.New(detail.Error)
				}
				if detail.Movie == nil {
					return fmt.Errorf("movie %d: no details returned", id)
				}
				imageBase := ""
				if images {
					imageBase = env.Config.ImageBaseURL
				}
				printDetail(cmd.OutOrStdout(), detail.Movie, imageBase)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&images, "images", false, "include poster and backdrop URLs")
	topLevel.AddCommand(cmd)
}
