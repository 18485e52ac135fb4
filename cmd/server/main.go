package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/regions/internal/config"
	"github.com/JonMunkholm/regions/internal/core"
	"github.com/JonMunkholm/regions/internal/logging"
	"github.com/JonMunkholm/regions/internal/seed"
	"github.com/JonMunkholm/regions/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	regions, err := seed.Load(cfg.Store.SeedFile)
	if err != nil {
		slog.Error("failed to load seed dataset", "file", cfg.Store.SeedFile, "error", err)
		os.Exit(1)
	}

	store, err := core.NewMemoryStore(regions)
	if err != nil {
		slog.Error("invalid seed dataset", "file", cfg.Store.SeedFile, "error", err)
		os.Exit(1)
	}
	slog.Info("region store ready", "regions", store.Len())

	service := core.NewService(store, cfg.Store.BulkDeleteConcurrency)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		slog.Info("shutting down...", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
