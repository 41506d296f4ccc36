package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-map/internal/adapter/httpadapter"
	"github.com/couchcryptid/climate-map/internal/config"
	"github.com/couchcryptid/climate-map/internal/dashboard"
	"github.com/couchcryptid/climate-map/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Both files are read once; a failure here means there is nothing to serve.
	loaded, err := dashboard.Bootstrap(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to load data", "error", err)
		os.Exit(1)
	}

	handler := dashboard.NewHandler(loaded.App, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, loaded.Service, handler, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
