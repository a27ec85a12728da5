// Package prediction turns the prediction backend's loosely typed JSON into a
// validated Result, or an error saying why it cannot be displayed.
package prediction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"weather-predictor/internal/providers/predictapi"
)

// DateLayout is the ISO date format used by historical points
const DateLayout = "2006-01-02"

// ErrInvalidResponse is wrapped by every schema violation
var ErrInvalidResponse = errors.New("invalid prediction response")

// MissingPredictionError reports a 2xx body that carries neither prediction
// field. Message is the server's own error text, empty when none was sent.
type MissingPredictionError struct {
	Message string
}

func (e *MissingPredictionError) Error() string {
	if e.Message == "" {
		return "response contains no prediction"
	}
	return "response contains no prediction: " + e.Message
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Metrics are the model evaluation scores. Nil means the backend did not send one.
type Metrics struct {
	MSE     *float64 `json:"mse,omitempty"`
	MAE     *float64 `json:"mae,omitempty"`
	R2Score *float64 `json:"r2_score,omitempty"`
}

// HistoricalPoint is one day's recorded observation. Date is always in
// DateLayout.
type HistoricalPoint struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Temperature float64  `json:"temperature"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
}

// Result is a prediction that is safe to display
type Result struct {
	Temperature     float64           `json:"temperature"`
	City            string            `json:"city,omitempty"`
	Metrics         Metrics           `json:"metrics"`
	TrainingSamples string            `json:"training_samples,omitempty"`
	History         []HistoricalPoint `json:"history,omitempty" validate:"dive"`
}

// Decode validates resp. The prediction field wins over predicted_temperature
// when both are present. Historical points without a usable date or
// temperature are dropped; they only feed the chart.
func Decode(resp *predictapi.PredictAPIResponse) (*Result, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var temperature *float64
	switch {
	case resp.Prediction != nil:
		temperature = resp.Prediction
	case resp.PredictedTemperature != nil:
		temperature = resp.PredictedTemperature
	default:
		missing := &MissingPredictionError{}
		if resp.Error != nil {
			missing.Message = *resp.Error
		}
		return nil, missing
	}

	result := &Result{
		Temperature: *temperature,
	}

	if resp.City != nil {
		result.City = *resp.City
	}

	if resp.Metrics != nil {
		result.Metrics = Metrics{
			MSE:     resp.Metrics.MSE,
			MAE:     resp.Metrics.MAE,
			R2Score: resp.Metrics.R2Score,
		}
	}

	if resp.ModelEvaluation != nil {
		samples, err := verbatim(resp.ModelEvaluation.TrainingSamples)
		if err != nil {
			return nil, fmt.Errorf("%w: training_samples: %v", ErrInvalidResponse, err)
		}
		result.TrainingSamples = samples
	}

	if len(resp.HistoricalData) > 0 {
		result.History = make([]HistoricalPoint, 0, len(resp.HistoricalData))
		for _, p := range resp.HistoricalData {
			date, ok := isoDate(p.Date)
			if !ok || p.Temperature == nil {
				continue
			}
			result.History = append(result.History, HistoricalPoint{
				Date:        date,
				Temperature: *p.Temperature,
				Humidity:    p.Humidity,
				WindSpeed:   p.WindSpeed,
			})
		}
	}

	if err := validate.Struct(result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return result, nil
}

// isoDate reduces an ISO date or datetime to its DateLayout date part.
func isoDate(s string) (string, bool) {
	if len(s) < len(DateLayout) {
		return "", false
	}
	if len(s) > len(DateLayout) && s[len(DateLayout)] != 'T' && s[len(DateLayout)] != ' ' {
		return "", false
	}
	date := s[:len(DateLayout)]
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}

// verbatim renders a raw JSON value the way it should read on screen:
// strings unquoted, numbers in plain notation, null as empty.
func verbatim(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[', 't', 'f':
		return string(trimmed), nil
	}

	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
