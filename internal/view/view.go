// Package view maps a prediction view state to the values shown on the page.
// Render is pure so every state can be checked without a browser.
package view

import (
	"fmt"
	"math"

	"weather-predictor/internal/chart"
	"weather-predictor/internal/prediction"
)

// Button labels
const (
	ButtonIdle    = "🔮 Predict Weather"
	ButtonLoading = "Predicting..."
)

// Placeholders for values the backend did not send
const (
	NotAvailable   = "N/A"
	UnknownCity    = "Unknown"
	NoSampleCount  = "--"
	temperatureFmt = "%.2f°C"
	metricFmt      = "%.4f"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("unknown (%d)", int(p))
	}
}

// State is what the page is currently showing. Generation identifies the
// submission that produced it and is zero for Idle.
type State struct {
	Phase      Phase
	Result     *prediction.Result
	Message    string
	Generation uint64
}

func Idle() State {
	return State{Phase: PhaseIdle}
}

func Loading(generation uint64) State {
	return State{Phase: PhaseLoading, Generation: generation}
}

func Success(generation uint64, result *prediction.Result) State {
	return State{Phase: PhaseSuccess, Result: result, Generation: generation}
}

func Failure(generation uint64, message string) State {
	return State{Phase: PhaseError, Message: message, Generation: generation}
}

// Display holds every value bound to the page's display regions
type Display struct {
	Phase           string        `json:"phase"`
	LoaderVisible   bool          `json:"loader_visible"`
	ResultsVisible  bool          `json:"results_visible"`
	ErrorVisible    bool          `json:"error_visible"`
	ButtonDisabled  bool          `json:"button_disabled"`
	ButtonText      string        `json:"button_text"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	PredictedTemp   string        `json:"predicted_temp,omitempty"`
	CityName        string        `json:"city_name,omitempty"`
	MSE             string        `json:"mse,omitempty"`
	MAE             string        `json:"mae,omitempty"`
	R2              string        `json:"r2,omitempty"`
	TrainingSamples string        `json:"training_samples,omitempty"`
	Chart           *chart.Figure `json:"chart,omitempty"`
}

// Render maps state to display values. At most one of the error and results
// regions is visible, and the loader only shows while loading.
func Render(state State) Display {
	d := Display{
		Phase:      state.Phase.String(),
		ButtonText: ButtonIdle,
	}

	switch state.Phase {
	case PhaseLoading:
		d.LoaderVisible = true
		d.ButtonDisabled = true
		d.ButtonText = ButtonLoading
	case PhaseError:
		d.ErrorVisible = true
		d.ErrorMessage = state.Message
	case PhaseSuccess:
		if state.Result == nil {
			d.ErrorVisible = true
			d.ErrorMessage = "An error occurred while making the prediction."
			return d
		}
		renderResult(&d, state.Result)
	}

	return d
}

func renderResult(d *Display, r *prediction.Result) {
	d.ResultsVisible = true
	d.PredictedTemp = FormatTemperature(&r.Temperature)

	d.CityName = r.City
	if d.CityName == "" {
		d.CityName = UnknownCity
	}

	d.MSE = FormatMetric(r.Metrics.MSE)
	d.MAE = FormatMetric(r.Metrics.MAE)
	d.R2 = FormatMetric(r.Metrics.R2Score)

	d.TrainingSamples = r.TrainingSamples
	if d.TrainingSamples == "" {
		d.TrainingSamples = NoSampleCount
	}

	if len(r.History) > 0 {
		d.Chart = chart.Build(r.History, &r.Temperature, r.City)
	}
}

// FormatTemperature renders a temperature with two decimals and a °C suffix
func FormatTemperature(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf(temperatureFmt, *v)
}

// FormatMetric renders an evaluation score with four decimals
func FormatMetric(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf(metricFmt, *v)
}
