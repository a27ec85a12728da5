package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g docs.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weather-predictor/internal/config"
	"weather-predictor/internal/db"

	_ "weather-predictor/docs" // Import generated docs
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("WEATHER_PREDICTOR_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Recent-city store is optional
	store := openStore(ctx, cfg, logger)
	if store != nil {
		defer func() {
			_ = store.Close()
		}()
	}

	// Create app
	app, err := NewApp(cfg, logger, store)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(ctx, cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) *db.Store {
	if cfg.Database.Driver == "" {
		logger.Info("recent-city store disabled")
		return nil
	}

	store, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Warn("recent-city store unavailable, continuing without it", "driver", cfg.Database.Driver, "error", err)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		logger.Warn("failed to migrate recent-city store, continuing without it", "error", err)
		_ = store.Close()
		return nil
	}

	return store
}
