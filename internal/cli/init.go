// Package cli holds the start-up steps shared by the finboard subcommands:
// environment, logging, config and assembling the ledger service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finboard/internal/backend"
	"finboard/internal/config"
	"finboard/internal/ledger"
	applog "finboard/internal/log"
	"finboard/internal/seed"
	"finboard/internal/services"
)

const seriesCacheSize = 64

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// SetupLogger builds the application logger from config and makes it the
// slog default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	lc := applog.DefaultConfig()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = cfg.LogFormat
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig reads the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// App is a fully assembled ledger service plus what must be released on exit.
type App struct {
	Config  *config.Config
	Logger  *applog.Logger
	Service *services.DashboardService
	cleanup backend.CleanupFunc
}

func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// Bootstrap loads env and config, opens the configured backend, applies the
// seed file and returns the ready service.
func Bootstrap(ctx context.Context) (*App, error) {
	if err := LoadEnvFile(); err != nil {
		return nil, err
	}
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger := SetupLogger(cfg)
	return NewApp(ctx, cfg, logger)
}

func NewApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	l := ledger.New(res.Store, ledger.WithLocation(loc))
	svc := services.NewDashboardService(l, logger,
		services.WithPublisher(res.Publisher),
		services.WithSeriesCache(seriesCacheSize, cfg.CacheTTL))

	app := &App{Config: cfg, Logger: logger, Service: svc, cleanup: res.Cleanup}

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, l, cfg.SeedFile, logger); err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	return app, nil
}

// applySeed writes straight to the ledger so seeding emits no events.
func applySeed(ctx context.Context, l *ledger.Ledger, path string, logger *applog.Logger) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, l, f)
	if err != nil {
		return fmt.Errorf("apply seed %s: %w", path, err)
	}
	logger.WithComponent(applog.ComponentSeed).InfoContext(ctx, "Seed data loaded",
		applog.FieldOperation, applog.OpSeed,
		"file", path,
		"transactions", res.Transactions,
		"goals", res.Goals)
	return nil
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
