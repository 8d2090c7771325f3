package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/YaBoiMega0/monguessr/internal/config"
	"github.com/YaBoiMega0/monguessr/internal/database"
	"github.com/YaBoiMega0/monguessr/internal/game"
	"github.com/YaBoiMega0/monguessr/internal/migrations"
	"github.com/YaBoiMega0/monguessr/internal/server"
	"github.com/YaBoiMega0/monguessr/internal/store"
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

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Engine ---
	st := store.NewSQLiteStore(db)
	engine := game.New(st, st, logger, game.Options{
		EndlessStartHP: cfg.EndlessStartHP,
		StandardRounds: cfg.StandardRounds,
		SessionTTL:     cfg.SessionTTL,
	})

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Engine:        engine,
		Catalog:       st,
		DB:            db,
		ImageDir:      cfg.ImageDir,
		AdminPassHash: cfg.AdminPassHash,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	// Abandoned sessions are recovered only here; browsers close mid-game
	// without calling killsession.
	g.Go(func() error {
		return sweepLoop(gctx, logger, engine, cfg.SweepInterval)
	})

	return g.Wait()
}

func sweepLoop(ctx context.Context, logger *slog.Logger, engine *game.Engine, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := engine.SweepExpired(ctx); err != nil {
				logger.Error("session sweep failed", "error", err)
			}
		}
	}
}
