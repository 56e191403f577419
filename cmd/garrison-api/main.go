package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/garrison-vtt/garrison/internal/api"
	"github.com/garrison-vtt/garrison/internal/asset"
	"github.com/garrison-vtt/garrison/internal/config"
	"github.com/garrison-vtt/garrison/internal/db"
	"github.com/garrison-vtt/garrison/internal/logging"
	"github.com/garrison-vtt/garrison/internal/metrics"
	"github.com/garrison-vtt/garrison/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run starts the API server and blocks until it stops. It returns the
// process exit code so deferred cleanup runs before the process exits.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("garrison-api", flag.ContinueOnError)
	fs.SetOutput(stderr)
	migrateFlag := fs.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := fs.String("migrate-dir", "", "Migration files directory (default: embedded migrations)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		applied, err := db.RunMigrations(ctx, cfg.DatabaseURL, *migrateDirFlag)
		if err != nil {
			logger.Error().Err(err).Msg("migration failed")
			return 1
		}
		logger.Info().Int("applied", applied).Msg("database migrations complete")
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return 1
	}
	defer pool.Close()
	metrics.RegisterPgxPoolMetrics(prometheus.DefaultRegisterer, pool)

	backend, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open asset storage")
		return 1
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	store := asset.NewStore(backend, logger)
	srv := api.NewServer(logger, pool, store, cfg)

	httpServer := &http.Server{
		Addr:              cfg.HTTPListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.HTTPListenAddr).
			Str("asset_backend", store.BackendName()).
			Msg("starting garrison API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return 1
	}
	return 0
}
