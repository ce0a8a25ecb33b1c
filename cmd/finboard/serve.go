package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"finboard/internal/cache"
	"finboard/internal/cli"
	apphttp "finboard/internal/http"
	applog "finboard/internal/log"
)

const shutdownTimeout = 30 * time.Second

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the dashboard JSON API" }
func (*serveCmd) Usage() string {
	return `finboard serve [-port <port>]

  Serves the ledger over HTTP until SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "listen port (defaults to $PORT)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := cli.Bootstrap(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger.Error("Cleanup failed", applog.FieldError, err)
		}
	}()

	port := app.Config.Port
	if c.port != "" {
		port = c.port
	}

	if err := run(ctx, app, ":"+port); err != nil {
		app.Logger.Error("Server error", applog.FieldError, err, "port", port)
		return subcommands.ExitFailure
	}
	app.Logger.Info("Server stopped gracefully")
	return subcommands.ExitSuccess
}

func run(ctx context.Context, app *cli.App, addr string) error {
	ctx, stop := cli.SignalContext(ctx, app.Logger)
	defer stop()

	srv := apphttp.NewServer(addr, app.Service, app.Logger, apphttp.OptionsFromConfig(app.Config))

	caches := cache.NewManager(app.Logger)
	for _, c := range app.Service.Caches() {
		caches.Register(c)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info("Starting finboard server",
			"addr", addr,
			"backend", app.Config.DataBackend,
			"currency", app.Config.Currency,
			"amqp_enabled", app.Config.AMQPURL != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		if app.Config.CacheTTL > 0 {
			caches.StartCleanup(gctx, app.Config.CacheTTL)
			defer caches.Stop()
		}
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
