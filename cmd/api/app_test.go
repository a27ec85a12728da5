package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"weather-predictor/internal/config"
	"weather-predictor/internal/db"
	"weather-predictor/internal/providers/predictapi"
	"weather-predictor/internal/view"
	"weather-predictor/internal/web"
)

type mockPredictor struct {
	mu        sync.Mutex
	predict   func(ctx context.Context, city string) (*predictapi.PredictAPIResponse, error)
	modelInfo *predictapi.ModelInfoAPIResponse
	modelErr  error
	cities    []string
	health    int
}

func (m *mockPredictor) Predict(ctx context.Context, city string) (*predictapi.PredictAPIResponse, error) {
	m.mu.Lock()
	m.cities = append(m.cities, city)
	m.mu.Unlock()
	return m.predict(ctx, city)
}

func (m *mockPredictor) Health(ctx context.Context) (*predictapi.HealthAPIResponse, error) {
	m.mu.Lock()
	m.health++
	m.mu.Unlock()
	return &predictapi.HealthAPIResponse{Status: "healthy", ModelsLoaded: true}, nil
}

func (m *mockPredictor) ModelInfo(ctx context.Context) (*predictapi.ModelInfoAPIResponse, error) {
	return m.modelInfo, m.modelErr
}

func (m *mockPredictor) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cities)
}

type mockCities struct {
	cities []db.RecentCity
	err    error
	prefix string
}

func (m *mockCities) SearchCities(ctx context.Context, prefix string, limit int) ([]db.RecentCity, error) {
	m.prefix = prefix
	return m.cities, m.err
}

func berlin(ctx context.Context, city string) (*predictapi.PredictAPIResponse, error) {
	var resp predictapi.PredictAPIResponse
	err := json.Unmarshal([]byte(`{
		"prediction": 18.456,
		"city": "Berlin",
		"metrics": {"mse": 1.2345, "mae": 0.98, "r2_score": 0.91},
		"historical_data": [{"date": "2024-01-01", "temperature": 15.0}]
	}`), &resp)
	return &resp, err
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 8080, GinMode: "test"},
		Log:       config.LogConfig{Level: "error", Format: "text"},
		Predictor: config.PredictorConfig{BaseURL: "http://backend.invalid", HealthTimeout: time.Second, HealthCache: time.Minute},
		Session:   config.SessionConfig{CookieName: "wp_session", IdleTimeout: time.Hour},
	}
}

func newTestApp(t *testing.T, predictor *mockPredictor, cities CitySearcher) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := NewAppWithDependencies(testConfig(), logger, predictor, nil, cities)
	if err != nil {
		t.Fatalf("NewAppWithDependencies() unexpected error = %v", err)
	}
	t.Cleanup(app.sessions.Close)
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "wp_session" {
			return c
		}
	}
	t.Fatal("wp_session cookie not set")
	return nil
}

func decodeDisplay(t *testing.T, w *httptest.ResponseRecorder) view.Display {
	t.Helper()
	var d view.Display
	if err := json.NewDecoder(w.Body).Decode(&d); err != nil {
		t.Fatalf("failed to decode display: %v", err)
	}
	return d
}

func TestPing(t *testing.T) {
	app := newTestApp(t, &mockPredictor{}, nil)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp PingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Message != "pong" {
		t.Errorf("Message = %q, want pong", resp.Message)
	}
}

func TestIndex_RendersIdlePage(t *testing.T) {
	app := newTestApp(t, &mockPredictor{}, nil)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if missing := web.CheckMarkup(w.Body.Bytes()); len(missing) != 0 {
		t.Errorf("page is missing ids %v", missing)
	}
	sessionCookie(t, w)
}

func TestSubmitForm(t *testing.T) {
	tests := []struct {
		name      string
		city      string
		wantText  string
		wantCalls int
	}{
		{
			name:      "success",
			city:      "Berlin",
			wantText:  "18.46°C",
			wantCalls: 1,
		},
		{
			name:      "blank city",
			city:      "   ",
			wantText:  "Please enter a city name.",
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &mockPredictor{predict: berlin}
			app := newTestApp(t, predictor, nil)

			form := url.Values{"city": {tt.city}}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := serve(app, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantText) {
				t.Errorf("page does not contain %q", tt.wantText)
			}
			if predictor.calls() != tt.wantCalls {
				t.Errorf("Predict calls = %d, want %d", predictor.calls(), tt.wantCalls)
			}
		})
	}
}

func TestPredictAPI(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		predict    func(context.Context, string) (*predictapi.PredictAPIResponse, error)
		wantStatus int
		validate   func(*testing.T, view.Display)
	}{
		{
			name:       "success",
			body:       `{"city": "Berlin"}`,
			predict:    berlin,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, d view.Display) {
				if !d.ResultsVisible || d.ErrorVisible || d.LoaderVisible {
					t.Errorf("visibility = %+v, want results only", d)
				}
				if d.PredictedTemp != "18.46°C" || d.CityName != "Berlin" {
					t.Errorf("values = %q %q", d.PredictedTemp, d.CityName)
				}
				if d.Chart == nil || len(d.Chart.Data) != 2 {
					t.Errorf("chart = %+v, want two traces", d.Chart)
				}
			},
		},
		{
			name:       "empty city",
			body:       `{"city": ""}`,
			predict:    berlin,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, d view.Display) {
				if !d.ErrorVisible || d.ErrorMessage != "Please enter a city name." {
					t.Errorf("display = %+v, want validation error", d)
				}
			},
		},
		{
			name: "backend error",
			body: `{"city": "Atlantis"}`,
			predict: func(context.Context, string) (*predictapi.PredictAPIResponse, error) {
				return nil, &predictapi.StatusError{StatusCode: 404, Body: "City not found"}
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, d view.Display) {
				if d.ErrorMessage != "Server Error 404: City not found" {
					t.Errorf("ErrorMessage = %q", d.ErrorMessage)
				}
				if d.ResultsVisible {
					t.Error("results visible after error")
				}
			},
		},
		{
			name:       "malformed body",
			body:       `{"city": `,
			predict:    berlin,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &mockPredictor{predict: tt.predict}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(app, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.validate != nil {
				tt.validate(t, decodeDisplay(t, w))
			}
		})
	}
}

func TestState_FollowsSession(t *testing.T) {
	app := newTestApp(t, &mockPredictor{predict: berlin}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"city": "Berlin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(app, req)
	cookie := sessionCookie(t, w)

	// same session sees the result
	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.AddCookie(cookie)
	w = serve(app, req)
	if d := decodeDisplay(t, w); d.Phase != "success" || d.PredictedTemp != "18.46°C" {
		t.Errorf("session state = %+v, want the Berlin result", d)
	}

	// a new session starts idle
	w = serve(app, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if d := decodeDisplay(t, w); d.Phase != "idle" || d.ResultsVisible {
		t.Errorf("new session state = %+v, want idle", d)
	}
}

func TestState_WithoutCookieStartsNoSession(t *testing.T) {
	predictor := &mockPredictor{predict: berlin}
	app := newTestApp(t, predictor, nil)

	for range 3 {
		w := serve(app, httptest.NewRequest(http.MethodGet, "/api/state", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if len(w.Result().Cookies()) != 0 {
			t.Error("GET /api/state without a session set a cookie")
		}
	}

	if n := app.sessions.Len(); n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}
}

func TestIndex_SessionsShareHealthCheck(t *testing.T) {
	predictor := &mockPredictor{predict: berlin}
	app := newTestApp(t, predictor, nil)

	for range 5 {
		serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	}
	app.sessions.Close()

	predictor.mu.Lock()
	defer predictor.mu.Unlock()
	if predictor.health != 1 {
		t.Errorf("health checks = %d, want 1 for 5 new sessions", predictor.health)
	}
}

func TestModelInfo(t *testing.T) {
	tests := []struct {
		name       string
		predictor  *mockPredictor
		wantStatus int
	}{
		{
			name: "success",
			predictor: &mockPredictor{modelInfo: &predictapi.ModelInfoAPIResponse{
				Success: true,
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "backend failure",
			predictor:  &mockPredictor{modelErr: &predictapi.TransportError{Err: errors.New("refused")}},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.predictor, nil)
			w := serve(app, httptest.NewRequest(http.MethodGet, "/api/model-info", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCities(t *testing.T) {
	found := []db.RecentCity{{City: "Berlin", LastTemperature: 18.5, Lookups: 3}}

	tests := []struct {
		name       string
		cities     *mockCities
		query      string
		wantStatus int
		wantLen    int
		wantPrefix string
	}{
		{
			name:       "match",
			cities:     &mockCities{cities: found},
			query:      " Ber ",
			wantStatus: http.StatusOK,
			wantLen:    1,
			wantPrefix: "Ber",
		},
		{
			name:       "query too short",
			cities:     &mockCities{cities: found},
			query:      "B",
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "no store",
			query:      "Berlin",
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "store failure",
			cities:     &mockCities{err: errors.New("database is locked")},
			query:      "Berlin",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var searcher CitySearcher
			if tt.cities != nil {
				searcher = tt.cities
			}
			app := newTestApp(t, &mockPredictor{}, searcher)

			w := serve(app, httptest.NewRequest(http.MethodGet, "/api/cities?q="+url.QueryEscape(tt.query), nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got []db.RecentCity
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if got == nil || len(got) != tt.wantLen {
				t.Errorf("cities = %v, want %d entries", got, tt.wantLen)
			}
			if tt.wantPrefix != "" && tt.cities.prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", tt.cities.prefix, tt.wantPrefix)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	app := newTestApp(t, &mockPredictor{}, nil)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Plotly.newPlot") {
		t.Error("app.js does not draw the chart")
	}
}
