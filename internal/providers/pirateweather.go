package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/nitesh/risk_dashboard/internal/classify"
)

// CurrentWeather is what the weather fetcher needs from any forecast source.
// Temperatures are °F, wind is mph, humidity is a 0-100 percentage.
type CurrentWeather struct {
	Summary             string
	Icon                string
	Temperature         float64
	ApparentTemperature float64
	High                float64
	Low                 float64
	Humidity            float64
	WindSpeed           float64
	UVIndex             float64
}

// Alert is one active provider alert. Expires is a unix timestamp.
type Alert struct {
	Title       string
	Description string
	Severity    string
	Expires     int64
	Regions     []string
}

// AlertReport pairs active alerts with the raw readings used for hazard checks.
type AlertReport struct {
	Alerts     []Alert
	Conditions classify.Conditions
}

type pirateForecast struct {
	Currently struct {
		Summary             string  `json:"summary"`
		Icon                string  `json:"icon"`
		PrecipIntensity     float64 `json:"precipIntensity"`
		PrecipProbability   float64 `json:"precipProbability"`
		Temperature         float64 `json:"temperature"`
		ApparentTemperature float64 `json:"apparentTemperature"`
		Humidity            float64 `json:"humidity"`
		WindSpeed           float64 `json:"windSpeed"`
		UVIndex             float64 `json:"uvIndex"`
		Visibility          float64 `json:"visibility"`
	} `json:"currently"`
	Daily struct {
		Data []struct {
			TemperatureHigh float64 `json:"temperatureHigh"`
			TemperatureLow  float64 `json:"temperatureLow"`
		} `json:"data"`
	} `json:"daily"`
	Alerts []struct {
		Title       string   `json:"title"`
		Time        int64    `json:"time"`
		Expires     int64    `json:"expires"`
		Description string   `json:"description"`
		URI         string   `json:"uri"`
		Severity    string   `json:"severity"`
		Regions     []string `json:"regions"`
	} `json:"alerts"`
}

// PirateWeatherProvider serves both the weather and the disaster-alert fetchers.
type PirateWeatherProvider struct {
	base
	apiKey string
}

func NewPirateWeatherProvider(apiKey string, deps Deps) *PirateWeatherProvider {
	return &PirateWeatherProvider{
		base:   deps.base("PirateWeather", "https://api.pirateweather.net/forecast"),
		apiKey: apiKey,
	}
}

func (p *PirateWeatherProvider) IsAvailable() bool {
	return p.apiKey != ""
}

func (p *PirateWeatherProvider) forecast(ctx context.Context, lat, lon float64) (*pirateForecast, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("%s: %w", p.Name(), ErrMissingAPIKey)
	}
	reqURL := fmt.Sprintf("%s/%s/%s,%s",
		strings.TrimRight(p.baseURL, "/"), url.PathEscape(p.apiKey), formatCoord(lat), formatCoord(lon))

	var fc pirateForecast
	if err := p.getJSON(ctx, reqURL, nil, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (p *PirateWeatherProvider) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	fc, err := p.forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if len(fc.Daily.Data) == 0 {
		return nil, fmt.Errorf("%s: daily forecast: %w", p.Name(), ErrNoData)
	}
	cur := fc.Currently
	today := fc.Daily.Data[0]
	return &CurrentWeather{
		Summary:             cur.Summary,
		Icon:                cur.Icon,
		Temperature:         cur.Temperature,
		ApparentTemperature: cur.ApparentTemperature,
		High:                today.TemperatureHigh,
		Low:                 today.TemperatureLow,
		Humidity:            cur.Humidity * 100,
		WindSpeed:           cur.WindSpeed,
		UVIndex:             cur.UVIndex,
	}, nil
}

func (p *PirateWeatherProvider) AlertReport(ctx context.Context, lat, lon float64) (*AlertReport, error) {
	fc, err := p.forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	report := &AlertReport{
		Alerts: make([]Alert, 0, len(fc.Alerts)),
		Conditions: classify.Conditions{
			WindSpeed:         fc.Currently.WindSpeed,
			PrecipIntensity:   fc.Currently.PrecipIntensity,
			PrecipProbability: fc.Currently.PrecipProbability,
			Visibility:        fc.Currently.Visibility,
			Temperature:       fc.Currently.Temperature,
		},
	}
	for _, a := range fc.Alerts {
		report.Alerts = append(report.Alerts, Alert{
			Title:       a.Title,
			Description: a.Description,
			Severity:    a.Severity,
			Expires:     a.Expires,
			Regions:     a.Regions,
		})
	}
	return report, nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
