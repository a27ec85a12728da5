package view

import (
	"encoding/json"
	"math"
	"testing"

	"weather-predictor/internal/chart"
	"weather-predictor/internal/prediction"
	"weather-predictor/internal/providers/predictapi"
)

func f(v float64) *float64 {
	return &v
}

func TestRender_Visibility(t *testing.T) {
	tests := []struct {
		name        string
		state       State
		wantLoader  bool
		wantResults bool
		wantError   bool
		wantButton  string
		wantPhase   string
	}{
		{
			name:       "idle",
			state:      Idle(),
			wantButton: ButtonIdle,
			wantPhase:  "idle",
		},
		{
			name:       "loading",
			state:      Loading(1),
			wantLoader: true,
			wantButton: ButtonLoading,
			wantPhase:  "loading",
		},
		{
			name:        "success",
			state:       Success(1, &prediction.Result{Temperature: 1}),
			wantResults: true,
			wantButton:  ButtonIdle,
			wantPhase:   "success",
		},
		{
			name:       "error",
			state:      Failure(1, "boom"),
			wantError:  true,
			wantButton: ButtonIdle,
			wantPhase:  "error",
		},
		{
			name:       "success without result degrades to error",
			state:      State{Phase: PhaseSuccess},
			wantError:  true,
			wantButton: ButtonIdle,
			wantPhase:  "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Render(tt.state)

			if d.LoaderVisible != tt.wantLoader {
				t.Errorf("LoaderVisible = %v, want %v", d.LoaderVisible, tt.wantLoader)
			}
			if d.ButtonDisabled != tt.wantLoader {
				t.Errorf("ButtonDisabled = %v, want %v", d.ButtonDisabled, tt.wantLoader)
			}
			if d.ResultsVisible != tt.wantResults {
				t.Errorf("ResultsVisible = %v, want %v", d.ResultsVisible, tt.wantResults)
			}
			if d.ErrorVisible != tt.wantError {
				t.Errorf("ErrorVisible = %v, want %v", d.ErrorVisible, tt.wantError)
			}
			if d.ResultsVisible && d.ErrorVisible {
				t.Error("results and error are both visible")
			}
			if d.ButtonText != tt.wantButton {
				t.Errorf("ButtonText = %q, want %q", d.ButtonText, tt.wantButton)
			}
			if d.Phase != tt.wantPhase {
				t.Errorf("Phase = %q, want %q", d.Phase, tt.wantPhase)
			}
		})
	}
}

func TestRender_ErrorMessage(t *testing.T) {
	d := Render(Failure(3, "Please enter a city name."))
	if d.ErrorMessage != "Please enter a city name." {
		t.Errorf("ErrorMessage = %q", d.ErrorMessage)
	}
	if d.PredictedTemp != "" || d.Chart != nil {
		t.Errorf("error display leaked result values: %+v", d)
	}
}

func TestRender_BerlinExample(t *testing.T) {
	result := &prediction.Result{
		Temperature: 18.456,
		City:        "Berlin",
		Metrics: prediction.Metrics{
			MSE:     f(1.2345),
			MAE:     f(0.98),
			R2Score: f(0.91),
		},
		History: []prediction.HistoricalPoint{{Date: "2024-01-01", Temperature: 15.0}},
	}

	d := Render(Success(1, result))

	checks := map[string][2]string{
		"PredictedTemp":   {d.PredictedTemp, "18.46°C"},
		"CityName":        {d.CityName, "Berlin"},
		"MSE":             {d.MSE, "1.2345"},
		"MAE":             {d.MAE, "0.9800"},
		"R2":              {d.R2, "0.9100"},
		"TrainingSamples": {d.TrainingSamples, "--"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}

	if d.Chart == nil {
		t.Fatal("Chart is nil, want historical + predicted traces")
	}
	if len(d.Chart.Data) != 2 {
		t.Fatalf("len(Chart.Data) = %d, want 2", len(d.Chart.Data))
	}
	if d.Chart.Data[0].Name != chart.TraceHistorical {
		t.Errorf("Chart.Data[0].Name = %q", d.Chart.Data[0].Name)
	}
	if d.Chart.Data[1].Name != chart.TracePredicted || d.Chart.Data[1].X[0] != "2024-01-02" {
		t.Errorf("Chart.Data[1] = %+v", d.Chart.Data[1])
	}
}

func TestRender_UnusableHistoryKeepsPrediction(t *testing.T) {
	body := `{
		"prediction": 18.456,
		"city": "Berlin",
		"historical_data": [
			{"date": "2024-01-01T00:00:00", "temperature": 15},
			{"date": null, "temperature": 16},
			{"date": "2024-01-03", "temperature": null}
		]
	}`
	var resp predictapi.PredictAPIResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}

	result, err := prediction.Decode(&resp)
	if err != nil {
		t.Fatalf("Decode() unexpected error = %v", err)
	}

	d := Render(Success(1, result))
	if !d.ResultsVisible || d.ErrorVisible {
		t.Errorf("ResultsVisible = %v, ErrorVisible = %v, want results only", d.ResultsVisible, d.ErrorVisible)
	}
	if d.PredictedTemp != "18.46°C" {
		t.Errorf("PredictedTemp = %q, want 18.46°C", d.PredictedTemp)
	}
	if d.Chart == nil || len(d.Chart.Data) != 2 {
		t.Fatalf("Chart = %+v, want historical + predicted traces", d.Chart)
	}
	if got := d.Chart.Data[0].X; len(got) != 1 || got[0] != "2024-01-01" {
		t.Errorf("historical X = %v, want [2024-01-01]", got)
	}
	if got := d.Chart.Data[1].X; len(got) != 1 || got[0] != "2024-01-02" {
		t.Errorf("predicted X = %v, want [2024-01-02]", got)
	}
}

func TestRender_Fallbacks(t *testing.T) {
	d := Render(Success(1, &prediction.Result{Temperature: -3}))

	if d.PredictedTemp != "-3.00°C" {
		t.Errorf("PredictedTemp = %q, want -3.00°C", d.PredictedTemp)
	}
	if d.CityName != UnknownCity {
		t.Errorf("CityName = %q, want %q", d.CityName, UnknownCity)
	}
	if d.MSE != NotAvailable || d.MAE != NotAvailable || d.R2 != NotAvailable {
		t.Errorf("metrics = %q %q %q, want N/A", d.MSE, d.MAE, d.R2)
	}
	if d.TrainingSamples != NoSampleCount {
		t.Errorf("TrainingSamples = %q, want %q", d.TrainingSamples, NoSampleCount)
	}
	if d.Chart != nil {
		t.Errorf("Chart = %+v, want nil without history", d.Chart)
	}
}

func TestRender_TrainingSamplesVerbatim(t *testing.T) {
	d := Render(Success(1, &prediction.Result{Temperature: 1, TrainingSamples: "1200"}))
	if d.TrainingSamples != "1200" {
		t.Errorf("TrainingSamples = %q, want 1200", d.TrainingSamples)
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, NotAvailable},
		{"NaN", f(math.NaN()), NotAvailable},
		{"Inf", f(math.Inf(-1)), NotAvailable},
		{"zero", f(0), "0.00°C"},
		{"rounds up", f(18.456), "18.46°C"},
		{"rounds down", f(18.454), "18.45°C"},
		{"negative", f(-12.3), "-12.30°C"},
		{"integer", f(20), "20.00°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTemperature(tt.in); got != tt.want {
				t.Errorf("FormatTemperature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, NotAvailable},
		{"zero", f(0), "0.0000"},
		{"short", f(0.98), "0.9800"},
		{"exact", f(1.2345), "1.2345"},
		{"long", f(0.123456), "0.1235"},
		{"negative r2", f(-0.5), "-0.5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMetric(tt.in); got != tt.want {
				t.Errorf("FormatMetric() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	if got := Phase(42).String(); got != "unknown (42)" {
		t.Errorf("Phase(42).String() = %q", got)
	}
}
