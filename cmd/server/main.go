package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/doubles-roundrobin/internal/api"
	"github.com/mcoot/doubles-roundrobin/internal/factory"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !run(cfg) {
		os.Exit(1)
	}
}

// run serves until a shutdown signal arrives. It reports false on failure
// after storage has been closed.
func run(cfg *serverConfig) bool {

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)
	cfg.Factory.Logger = logger

	// Create application factory
	app, err := factory.New(cfg.Factory)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return false
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		TournamentController: app.TournamentController,
		Events:               app.Events,
		CORSOrigins:          cfg.CORSOrigins,
	})

	// Create server
	server := api.NewServer(router, cfg.Server, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Events.RunCleanup(ctx, 5*time.Minute)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Factory.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return false
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Event streams never finish on their own
		app.Events.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return false
		}
	}

	logger.Info("server stopped")
	return true
}
