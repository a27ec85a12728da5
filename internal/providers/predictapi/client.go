package predictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Endpoints exposed by the prediction backend
const (
	predictPath   = "api/predict/"
	healthPath    = "api/health/"
	modelInfoPath = "api/model-info/"
)

// ErrMalformedResponse is returned when a 2xx body is not the expected JSON
var ErrMalformedResponse = errors.New("malformed response body")

// StatusError is returned for any non-2xx response. Body is the raw response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request never produced a response
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the prediction backend's HTTP API
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a prediction API client. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewClientWithHTTPClient creates a client around a caller-supplied http.Client.
// This is useful for tests that swap the transport.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger.With("component", "predictapi-client"),
	}
}

// Predict posts the city to the prediction endpoint
func (c *Client) Predict(ctx context.Context, city string) (*PredictAPIResponse, error) {
	u, err := c.endpoint(predictPath)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(PredictAPIRequest{City: city})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("requesting prediction", "city", city, "url", u)

	var apiResp PredictAPIResponse
	if err := c.do(req, &apiResp); err != nil {
		c.logger.Error("prediction request failed", "city", city, "error", err)
		return nil, err
	}

	c.logger.Debug("received prediction",
		"city", city,
		"has_prediction", apiResp.Prediction != nil,
		"has_predicted_temperature", apiResp.PredictedTemperature != nil,
		"historical_points", len(apiResp.HistoricalData),
	)

	return &apiResp, nil
}

// Health fetches the backend health status
func (c *Client) Health(ctx context.Context) (*HealthAPIResponse, error) {
	u, err := c.endpoint(healthPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var apiResp HealthAPIResponse
	if err := c.do(req, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// ModelInfo fetches a description of the model serving predictions
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfoAPIResponse, error) {
	u, err := c.endpoint(modelInfoPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var apiResp ModelInfoAPIResponse
	if err := c.do(req, &apiResp); err != nil {
		c.logger.Error("model info request failed", "error", err)
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	return u.JoinPath(path).String(), nil
}

// do executes req and decodes a 2xx JSON body into out
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w: %v", ErrMalformedResponse, err)
	}

	return nil
}
