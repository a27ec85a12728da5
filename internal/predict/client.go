// Package predict runs the prediction cycle for one browser session: it
// validates the city, calls the prediction backend, and settles the view state.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weather-predictor/internal/config"
	"weather-predictor/internal/prediction"
	"weather-predictor/internal/providers/predictapi"
	"weather-predictor/internal/view"
	"weather-predictor/internal/web"
)

// Messages shown in the error region
const (
	MsgEmptyCity       = "Please enter a city name."
	MsgNetwork         = "Network error. Please check your connection and try again."
	MsgGeneric         = "An error occurred while making the prediction."
	MsgInvalidResponse = "Received an invalid response from the server."
)

const defaultHealthTimeout = 5 * time.Second

// Provider is the prediction backend a Client submits to
type Provider interface {
	// Predict posts a city to the prediction backend
	Predict(ctx context.Context, city string) (*predictapi.PredictAPIResponse, error)
	// Health reports whether the backend has its models loaded
	Health(ctx context.Context) (*predictapi.HealthAPIResponse, error)
}

// Recorder remembers cities that produced a prediction
type Recorder interface {
	RecordLookup(ctx context.Context, city string, temperature float64) error
}

// Client owns the view state of a single session. Submissions may overlap;
// only the most recent one is allowed to settle the state.
type Client struct {
	provider      Provider
	recorder      Recorder
	healthTimeout time.Duration
	logger        *slog.Logger

	mu         sync.Mutex
	state      view.State
	generation uint64
	cancel     context.CancelFunc
	inert      bool

	wg sync.WaitGroup
}

// NewClient creates a client backed by the HTTP prediction API. recorder may be nil.
func NewClient(cfg *config.Config, recorder Recorder, logger *slog.Logger) *Client {
	provider := predictapi.NewClient(cfg.Predictor.BaseURL, cfg.Predictor.Timeout, logger)
	return NewClientWithProvider(provider, recorder, cfg.Predictor.HealthTimeout, logger)
}

// NewClientWithProvider creates a client with a custom provider (useful for testing)
func NewClientWithProvider(provider Provider, recorder Recorder, healthTimeout time.Duration, logger *slog.Logger) *Client {
	if healthTimeout <= 0 {
		healthTimeout = defaultHealthTimeout
	}
	return &Client{
		provider:      provider,
		recorder:      recorder,
		healthTimeout: healthTimeout,
		logger:        logger.With("component", "prediction-client"),
		state:         view.Idle(),
	}
}

// Initialize checks that markup carries every element the display binds to.
// When something is missing the client logs it and ignores all later
// submissions. Otherwise a health check is started in the background.
func (c *Client) Initialize(ctx context.Context, markup []byte) {
	if missing := web.CheckMarkup(markup); len(missing) > 0 {
		c.mu.Lock()
		c.inert = true
		c.mu.Unlock()
		c.logger.Error("required page elements not found, predictions disabled", "missing", missing)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.checkHealth(context.WithoutCancel(ctx))
	}()
}

func (c *Client) checkHealth(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	health, err := c.provider.Health(ctx)
	if err != nil {
		c.logger.Error("health check failed", "error", err)
		return
	}
	if !health.ModelsLoaded {
		c.logger.Warn("prediction models are not loaded", "status", health.Status, "message", health.Message)
		return
	}
	c.logger.Debug("prediction backend healthy", "status", health.Status)
}

// Submit runs one prediction for cityName and returns the state it settled
// on. When a newer submission started meanwhile, the response is dropped and
// the newer submission's state is returned instead.
func (c *Client) Submit(ctx context.Context, cityName string) view.State {
	city := strings.TrimSpace(cityName)

	c.mu.Lock()
	if c.inert {
		state := c.state
		c.mu.Unlock()
		c.logger.Debug("ignoring submission on inert client")
		return state
	}

	c.generation++
	generation := c.generation
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if city == "" {
		c.state = view.Failure(generation, MsgEmptyCity)
		state := c.state
		c.mu.Unlock()
		return state
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.state = view.Loading(generation)
	c.mu.Unlock()

	c.logger.Info("requesting prediction", "city", city, "generation", generation)

	resp, err := c.provider.Predict(reqCtx, city)
	next, result := settle(generation, resp, err)

	c.mu.Lock()
	if generation != c.generation {
		current := c.state
		c.mu.Unlock()
		c.logger.Debug("discarding superseded response", "city", city, "generation", generation)
		return current
	}
	c.state = next
	c.cancel = nil
	c.mu.Unlock()

	if next.Phase == view.PhaseError {
		c.logger.Warn("prediction failed", "city", city, "message", next.Message, "error", err)
		return next
	}

	c.logger.Info("prediction settled", "city", city, "temperature", result.Temperature)
	c.record(ctx, city, result)

	return next
}

func (c *Client) record(ctx context.Context, city string, result *prediction.Result) {
	if c.recorder == nil {
		return
	}
	name := result.City
	if name == "" {
		name = city
	}
	if err := c.recorder.RecordLookup(ctx, name, result.Temperature); err != nil {
		c.logger.Warn("failed to record city lookup", "city", name, "error", err)
	}
}

// State returns a snapshot of the current view state
func (c *Client) State() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Inert reports whether the client refused to start
func (c *Client) Inert() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inert
}

// Close cancels any in-flight request and waits for background work
func (c *Client) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// settle maps a provider outcome to the state that ends a submission
func settle(generation uint64, resp *predictapi.PredictAPIResponse, err error) (view.State, *prediction.Result) {
	if err != nil {
		return view.Failure(generation, errorMessage(err)), nil
	}

	result, err := prediction.Decode(resp)
	if err != nil {
		return view.Failure(generation, errorMessage(err)), nil
	}

	return view.Success(generation, result), result
}

func errorMessage(err error) string {
	var statusErr *predictapi.StatusError
	var transportErr *predictapi.TransportError
	var missing *prediction.MissingPredictionError

	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server Error %d: %s", statusErr.StatusCode, statusErr.Body)
	case errors.As(err, &transportErr):
		return MsgNetwork
	case errors.As(err, &missing):
		if missing.Message != "" {
			return missing.Message
		}
		return MsgGeneric
	case errors.Is(err, predictapi.ErrMalformedResponse), errors.Is(err, prediction.ErrInvalidResponse):
		return MsgInvalidResponse
	default:
		return MsgGeneric
	}
}
