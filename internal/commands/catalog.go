package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
	"github.com/five82/marquee/internal/controller"
)

func addUpcoming(ctx context.Context, topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(ro, func(env *app.Env) error {
				env.List.Mount(ctx)
				movies := env.Store.Snapshot().Movies
				out := cmd.OutOrStdout()
				if len(movies.Upcoming) == 0 {
					printEmpty(out, "No upcoming movies.")
					return nil
				}
				printMovies(out, movies.Upcoming, movies.Genres)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addGenres(ctx context.Context, topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the movie genre catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(ro, func(env *app.Env) error {
				env.List.Mount(ctx)
				genres := env.Store.Snapshot().Movies.Genres
				if len(genres) == 0 {
					printEmpty(cmd.OutOrStdout(), "No genres.")
					return nil
				}
				printGenres(cmd.OutOrStdout(), genres)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addSearch(ctx context.Context, topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search upcoming movies by title",
		Long: `Search filters the upcoming list by a case-insensitive title match.
Queries shorter than three characters show the genre catalog instead.`,
		Example: `
marquee search batman
marquee search "no way home"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withEnv(ro, func(env *app.Env) error {
				env.List.Mount(ctx)
				env.List.HandleSearch(query)
				movies := env.Store.Snapshot().Movies
				out := cmd.OutOrStdout()

				switch controller.ViewFor(true, query) {
				case controller.ViewGenres:
					printEmpty(out, "Type at least 3 characters to search. Genres:")
					printGenres(out, movies.Genres)
				default:
					if len(movies.SearchResults) == 0 {
						printEmpty(out, fmt.Sprintf("No upcoming titles match %q.", query))
						return nil
					}
					printMovies(out, movies.SearchResults, movies.Genres)
				}
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}
