// Package chart builds the Plotly figure shown under a prediction. It only
// describes traces and axes; drawing is left to Plotly in the browser.
package chart

import (
	"math"
	"time"

	"weather-predictor/internal/prediction"
)

// Trace colors
const (
	ColorTemperature = "#667eea"
	ColorPredicted   = "#e53e3e"
	ColorHumidity    = "#38b2ac"
	ColorWindSpeed   = "#f6ad55"
)

// Trace names
const (
	TraceHistorical = "Historical Temperature"
	TracePredicted  = "Predicted Temperature"
	TraceHumidity   = "Humidity (%)"
	TraceWindSpeed  = "Wind Speed (m/s)"
)

// Figure is the argument triple passed to Plotly.newPlot
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

type Trace struct {
	X       []string   `json:"x"`
	Y       []*float64 `json:"y"`
	Type    string     `json:"type"`
	Mode    string     `json:"mode"`
	Name    string     `json:"name"`
	Line    *Line      `json:"line,omitempty"`
	Marker  *Marker    `json:"marker,omitempty"`
	YAxis   string     `json:"yaxis,omitempty"`
	Opacity float64    `json:"opacity,omitempty"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

type Marker struct {
	Size   int    `json:"size"`
	Color  string `json:"color,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

type Axis struct {
	Title      string  `json:"title"`
	Type       string  `json:"type,omitempty"`
	TitleFont  *Font   `json:"titlefont,omitempty"`
	TickFont   *Font   `json:"tickfont,omitempty"`
	Overlaying string  `json:"overlaying,omitempty"`
	Side       string  `json:"side,omitempty"`
	Position   float64 `json:"position,omitempty"`
}

type Legend struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	BgColor     string  `json:"bgcolor"`
	BorderColor string  `json:"bordercolor"`
	BorderWidth int     `json:"borderwidth"`
}

type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

type Layout struct {
	Title     Title  `json:"title"`
	XAxis     Axis   `json:"xaxis"`
	YAxis     Axis   `json:"yaxis"`
	YAxis2    Axis   `json:"yaxis2"`
	YAxis3    Axis   `json:"yaxis3"`
	Legend    Legend `json:"legend"`
	Margin    Margin `json:"margin"`
	HoverMode string `json:"hovermode"`
}

type Config struct {
	Responsive     bool `json:"responsive"`
	DisplayModeBar bool `json:"displayModeBar"`
	DisplayLogo    bool `json:"displaylogo"`
}

// Build returns the figure for points, or nil when there is nothing to plot.
// The predicted marker is placed one day after the last historical date.
// Humidity and wind speed get their own axes only when at least one point
// carries a value.
func Build(points []prediction.HistoricalPoint, predicted *float64, city string) *Figure {
	if len(points) == 0 {
		return nil
	}

	dates := make([]string, len(points))
	temperatures := make([]*float64, len(points))
	humidity := make([]*float64, len(points))
	windSpeed := make([]*float64, len(points))
	hasHumidity, hasWind := false, false

	for i, p := range points {
		dates[i] = p.Date
		temperatures[i] = ptr(p.Temperature)
		humidity[i] = p.Humidity
		windSpeed[i] = p.WindSpeed
		hasHumidity = hasHumidity || p.Humidity != nil
		hasWind = hasWind || p.WindSpeed != nil
	}

	traces := []Trace{
		{
			X:      dates,
			Y:      temperatures,
			Type:   "scatter",
			Mode:   "lines+markers",
			Name:   TraceHistorical,
			Line:   &Line{Color: ColorTemperature, Width: 3},
			Marker: &Marker{Size: 8},
		},
	}

	if predicted != nil && !math.IsNaN(*predicted) && !math.IsInf(*predicted, 0) {
		if next, ok := nextDay(dates[len(dates)-1]); ok {
			traces = append(traces, Trace{
				X:      []string{next},
				Y:      []*float64{ptr(*predicted)},
				Type:   "scatter",
				Mode:   "markers",
				Name:   TracePredicted,
				Marker: &Marker{Size: 15, Color: ColorPredicted, Symbol: "star"},
			})
		}
	}

	if hasHumidity {
		traces = append(traces, Trace{
			X:       dates,
			Y:       humidity,
			Type:    "scatter",
			Mode:    "lines",
			Name:    TraceHumidity,
			Line:    &Line{Color: ColorHumidity, Width: 2},
			YAxis:   "y2",
			Opacity: 0.7,
		})
	}

	if hasWind {
		traces = append(traces, Trace{
			X:       dates,
			Y:       windSpeed,
			Type:    "scatter",
			Mode:    "lines",
			Name:    TraceWindSpeed,
			Line:    &Line{Color: ColorWindSpeed, Width: 2},
			YAxis:   "y3",
			Opacity: 0.7,
		})
	}

	if city == "" {
		city = "City"
	}

	return &Figure{
		Data:   traces,
		Layout: newLayout(city),
		Config: Config{Responsive: true, DisplayModeBar: true, DisplayLogo: false},
	}
}

func newLayout(city string) Layout {
	return Layout{
		Title: Title{
			Text: "Weather Data & Prediction for " + city,
			Font: Font{Size: 18, Color: "#2d3748"},
		},
		XAxis: Axis{Title: "Date", Type: "date"},
		YAxis: Axis{
			Title:     "Temperature (°C)",
			TitleFont: &Font{Color: ColorTemperature},
			TickFont:  &Font{Color: ColorTemperature},
		},
		YAxis2: Axis{
			Title:      TraceHumidity,
			TitleFont:  &Font{Color: ColorHumidity},
			TickFont:   &Font{Color: ColorHumidity},
			Overlaying: "y",
			Side:       "right",
			Position:   0.85,
		},
		YAxis3: Axis{
			Title:      TraceWindSpeed,
			TitleFont:  &Font{Color: ColorWindSpeed},
			TickFont:   &Font{Color: ColorWindSpeed},
			Overlaying: "y",
			Side:       "right",
		},
		Legend: Legend{
			X:           0.02,
			Y:           0.98,
			BgColor:     "rgba(255,255,255,0.8)",
			BorderColor: "#e2e8f0",
			BorderWidth: 1,
		},
		Margin:    Margin{T: 50, L: 50, R: 80, B: 50},
		HoverMode: "x unified",
	}
}

func nextDay(date string) (string, bool) {
	t, err := time.Parse(prediction.DateLayout, date)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, 1).Format(prediction.DateLayout), true
}

func ptr(v float64) *float64 {
	return &v
}
