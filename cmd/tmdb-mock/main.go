// Command tmdb-mock serves a canned TMDB v3 catalog for local development.
//
//	tmdb-mock --port 9099 --key dev
//	MARQUEE_API_BASE_URL=http://localhost:9099/3 TMDB_API_KEY=dev marquee
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/mockapi"
)

type options struct {
	port    string
	data    string
	apiKey  string
	prefix  string
	logReqs bool
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	o := &options{}
	cmd := &cobra.Command{
		Use:           "tmdb-mock",
		Short:         "Serve a canned TMDB catalog over HTTP.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(ctx, o, log)
		},
	}
	cmd.Flags().StringVar(&o.port, "port", "9099", "port to listen on")
	cmd.Flags().StringVar(&o.data, "data", "", "catalog JSON file (default built-in sample)")
	cmd.Flags().StringVar(&o.apiKey, "key", "", "require this api_key (overrides the catalog file)")
	cmd.Flags().StringVar(&o.prefix, "prefix", "/3", "path prefix for the API")
	cmd.Flags().BoolVar(&o.logReqs, "log", false, "enable request logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tmdb-mock: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, o *options, log *logrus.Logger) error {
	cat := mockapi.SampleCatalog()
	if o.data != "" {
		loaded, err := mockapi.LoadCatalog(o.data)
		if err != nil {
			return err
		}
		cat = loaded
	}
	if o.apiKey != "" {
		cat.APIKey = o.apiKey
	}

	srv := &http.Server{
		Addr:              ":" + o.port,
		Handler:           mockapi.NewRouter(cat, mockapi.Options{Prefix: o.prefix, Logging: o.logReqs}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"prefix":   o.prefix,
			"upcoming": len(cat.Upcoming),
			"genres":   len(cat.Genres),
		}).Info("tmdb mock listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("tmdb mock stopped")
	return nil
}
