package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weather-predictor/internal/config"
	"weather-predictor/internal/db"
	"weather-predictor/internal/predict"
	"weather-predictor/internal/providers/predictapi"
	"weather-predictor/internal/web"

	"github.com/gin-gonic/gin"

	_ "weather-predictor/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// Predictor is the prediction backend as seen by the web server
type Predictor interface {
	predict.Provider
	ModelInfo(ctx context.Context) (*predictapi.ModelInfoAPIResponse, error)
}

// CitySearcher looks up recently predicted cities
type CitySearcher interface {
	SearchCities(ctx context.Context, prefix string, limit int) ([]db.RecentCity, error)
}

// App encapsulates application dependencies
type App struct {
	router    *gin.Engine
	logger    *slog.Logger
	cfg       *config.Config
	predictor Predictor
	cities    CitySearcher
	sessions  *predict.Store
}

// NewApp creates a new application backed by the HTTP prediction API.
// store may be nil, in which case lookups are not recorded.
func NewApp(cfg *config.Config, logger *slog.Logger, store *db.Store) (*App, error) {
	predictor := predictapi.NewClient(cfg.Predictor.BaseURL, cfg.Predictor.Timeout, logger)
	if store == nil {
		return NewAppWithDependencies(cfg, logger, predictor, nil, nil)
	}
	return NewAppWithDependencies(cfg, logger, predictor, store, store)
}

// NewAppWithDependencies creates an application with injected dependencies (useful for testing)
func NewAppWithDependencies(
	cfg *config.Config,
	logger *slog.Logger,
	predictor Predictor,
	recorder predict.Recorder,
	cities CitySearcher,
) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	markup, err := web.IdleMarkup()
	if err != nil {
		return nil, fmt.Errorf("failed to render page markup: %w", err)
	}

	sessionProvider := predict.NewSharedHealth(predictor, cfg.Predictor.HealthCache)
	newSession := func(ctx context.Context) *predict.Client {
		client := predict.NewClientWithProvider(sessionProvider, recorder, cfg.Predictor.HealthTimeout, logger)
		client.Initialize(ctx, markup)
		return client
	}

	app := &App{
		router:    router,
		logger:    logger,
		cfg:       cfg,
		predictor: predictor,
		cities:    cities,
		sessions:  predict.NewStore(newSession, cfg.Session.IdleTimeout, logger),
	}

	logger.Info("application initialized", "predictor", cfg.Predictor.BaseURL, "recent_cities", cities != nil)

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run serves on addr until ctx is canceled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	app.sessions.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// requestLogger logs one line per request after it completes
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
