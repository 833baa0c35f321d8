package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/squaredrill/internal/config"
	"github.com/playperu/squaredrill/internal/handler/health"
	"github.com/playperu/squaredrill/internal/server"
	"github.com/playperu/squaredrill/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	settings := cfg.DrillSettings()
	logger.Info("drill settings",
		"timed_questions", settings.Questions,
		"timed_seconds", settings.Seconds,
		"session_ttl", cfg.SessionTTL.String(),
	)

	// --- Sessions ---
	broker := server.NewBroker()
	sessions := session.NewRegistry(logger, session.Options{
		Settings: settings,
		TTL:      cfg.SessionTTL,
		Publish:  broker.Publish,
		OnRemove: broker.Close,
	})
	defer sessions.Close()

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Sessions:  sessions,
		Broker:    broker,
		Checks:    map[string]health.Checker{"sessions": sessions},
		StaticDir: cfg.StaticDir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return sessions.Run(gctx, cfg.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
