package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"weather-predictor/internal/config"
	"weather-predictor/internal/predict"
	"weather-predictor/internal/providers/predictapi"
	"weather-predictor/internal/view"
	"weather-predictor/internal/web"
)

// =============================================================================
// PREDICT COMMAND
// =============================================================================

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Predict tomorrow's temperature for a city",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "city",
				Usage:    "City name",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the rendered display as JSON",
			},
			&cli.BoolFlag{
				Name:  "chart",
				Usage: "Include the Plotly chart specification",
			},
		},
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	markup, err := web.IdleMarkup()
	if err != nil {
		return err
	}

	client := predict.NewClient(cfg, nil, logger)
	defer client.Close()
	client.Initialize(c.Context, markup)

	state := client.Submit(c.Context, c.String("city"))
	display := view.Render(state)
	if !c.Bool("chart") {
		display.Chart = nil
	}

	if c.Bool("json") {
		if err := writeJSON(c.App.Writer, display); err != nil {
			return err
		}
	} else if state.Phase == view.PhaseSuccess {
		if err := writeDisplay(c.App.Writer, display); err != nil {
			return err
		}
	}

	if state.Phase == view.PhaseError {
		return errors.New(state.Message)
	}
	return nil
}

func writeDisplay(w io.Writer, d view.Display) error {
	_, err := fmt.Fprintf(w,
		"Predicted temperature for %s: %s\n"+
			"  MSE:              %s\n"+
			"  MAE:              %s\n"+
			"  R² Score:         %s\n"+
			"  Training samples: %s\n",
		d.CityName, d.PredictedTemp, d.MSE, d.MAE, d.R2, d.TrainingSamples,
	)
	if err != nil {
		return err
	}

	if d.Chart != nil {
		return writeJSON(w, d.Chart)
	}
	return nil
}

// =============================================================================
// HEALTH COMMAND
// =============================================================================

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check whether the prediction backend has its models loaded",
		Action: runHealth,
	}
}

func runHealth(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	client := predictapi.NewClient(cfg.Predictor.BaseURL, cfg.Predictor.HealthTimeout, logger)
	health, err := client.Health(c.Context)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "status:        %s\nmodels loaded: %t\n", health.Status, health.ModelsLoaded)
	if health.Message != "" {
		fmt.Fprintf(c.App.Writer, "message:       %s\n", health.Message)
	}

	if !health.ModelsLoaded {
		return errors.New("prediction models are not loaded")
	}
	return nil
}

// =============================================================================
// MODEL INFO COMMAND
// =============================================================================

func modelInfoCommand() *cli.Command {
	return &cli.Command{
		Name:   "model-info",
		Usage:  "Describe the model serving predictions",
		Action: runModelInfo,
	}
}

func runModelInfo(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	client := predictapi.NewClient(cfg.Predictor.BaseURL, cfg.Predictor.Timeout, logger)
	info, err := client.ModelInfo(c.Context)
	if err != nil {
		return fmt.Errorf("failed to get model info: %w", err)
	}

	return writeJSON(c.App.Writer, info)
}

// =============================================================================
// HELPERS
// =============================================================================

// loadConfig reads configuration and applies global flag overrides. Logs go
// to the error writer so stdout stays parseable.
func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if base := c.String("api-base"); base != "" {
		cfg.Predictor.BaseURL = base
	}

	return cfg, cfg.NewLoggerTo(c.App.ErrWriter), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
