package predictapi

import "encoding/json"

// PredictAPIRequest is the body of POST /api/predict/
type PredictAPIRequest struct {
	City string `json:"city"`
}

// PredictAPIResponse mirrors the prediction endpoint's JSON. Every field is
// optional on the wire, so pointers distinguish absent values from zero.
type PredictAPIResponse struct {
	Success              *bool                       `json:"success"`
	Prediction           *float64                    `json:"prediction"`
	PredictedTemperature *float64                    `json:"predicted_temperature"`
	City                 *string                     `json:"city"`
	Error                *string                     `json:"error"`
	Metrics              *MetricsAPIResponse         `json:"metrics"`
	ModelEvaluation      *ModelEvaluationAPIResponse `json:"model_evaluation"`
	HistoricalData       []HistoricalDataAPIResponse `json:"historical_data"`
	ExtraInfo            json.RawMessage             `json:"extra_info"`
}

// MetricsAPIResponse holds the model's evaluation scores
type MetricsAPIResponse struct {
	MSE     *float64 `json:"mse"`
	MAE     *float64 `json:"mae"`
	R2Score *float64 `json:"r2_score"`
}

// ModelEvaluationAPIResponse carries training details. TrainingSamples is kept
// raw because the backend may send it as a number or a string.
type ModelEvaluationAPIResponse struct {
	TrainingSamples json.RawMessage `json:"training_samples"`
}

// HistoricalDataAPIResponse is one day of recorded weather
type HistoricalDataAPIResponse struct {
	Date        string   `json:"date"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
}

// HealthAPIResponse is returned by GET /api/health/. Only ModelsLoaded is
// inspected; the rest is informational.
type HealthAPIResponse struct {
	Success      bool   `json:"success"`
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	Message      string `json:"message"`
	Error        string `json:"error"`
}

// ModelInfoAPIResponse is returned by GET /api/model-info/
type ModelInfoAPIResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ModelInfo struct {
		Name             string   `json:"name"`
		Architecture     string   `json:"architecture"`
		Features         []string `json:"features"`
		SequenceLength   int      `json:"sequence_length"`
		PredictionTarget string   `json:"prediction_target"`
		Framework        string   `json:"framework"`
	} `json:"model_info"`
}
