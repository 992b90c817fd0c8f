package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nitesh/risk_dashboard/internal/classify"
)

// NWSProvider reads the US National Weather Service. It needs no key but only
// covers US coordinates.
type NWSProvider struct {
	base
	userAgent string
}

func NewNWSProvider(userAgent string, deps Deps) *NWSProvider {
	if userAgent == "" {
		userAgent = "risk-dashboard/1.0"
	}
	return &NWSProvider{
		base:      deps.base("NWS", "https://api.weather.gov"),
		userAgent: userAgent,
	}
}

func (n *NWSProvider) IsAvailable() bool { return true }

func (n *NWSProvider) header() http.Header {
	h := http.Header{}
	h.Set("User-Agent", n.userAgent)
	h.Set("Accept", "application/geo+json")
	return h
}

type nwsPoint struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type nwsPeriod struct {
	Name             string `json:"name"`
	IsDaytime        bool   `json:"isDaytime"`
	Temperature      int    `json:"temperature"`
	WindSpeed        string `json:"windSpeed"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
	RelativeHumidity struct {
		Value *float64 `json:"value"`
	} `json:"relativeHumidity"`
	ProbabilityOfPrecipitation struct {
		Value *float64 `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

type nwsForecast struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsAlerts struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			Headline    string `json:"headline"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
			AreaDesc    string `json:"areaDesc"`
			Expires     string `json:"expires"`
		} `json:"properties"`
	} `json:"features"`
}

func (n *NWSProvider) periods(ctx context.Context, lat, lon float64) ([]nwsPeriod, error) {
	var pt nwsPoint
	pointURL := fmt.Sprintf("%s/points/%s,%s", n.baseURL, formatCoord(lat), formatCoord(lon))
	if err := n.getJSON(ctx, pointURL, n.header(), &pt); err != nil {
		return nil, err
	}
	if pt.Properties.Forecast == "" {
		return nil, fmt.Errorf("%s: forecast url: %w", n.Name(), ErrNoData)
	}

	var fc nwsForecast
	if err := n.getJSON(ctx, pt.Properties.Forecast, n.header(), &fc); err != nil {
		return nil, err
	}
	if len(fc.Properties.Periods) == 0 {
		return nil, fmt.Errorf("%s: forecast periods: %w", n.Name(), ErrNoData)
	}
	return fc.Properties.Periods, nil
}

func (n *NWSProvider) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	periods, err := n.periods(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	now := periods[0]

	// High and low come from the first day/night pair.
	high, low := float64(now.Temperature), float64(now.Temperature)
	for _, p := range periods[:min(2, len(periods))] {
		t := float64(p.Temperature)
		if p.IsDaytime {
			high = t
		} else {
			low = t
		}
	}

	humidity := float64(classify.HumidityFromText(now.DetailedForecast))
	if now.RelativeHumidity.Value != nil {
		humidity = *now.RelativeHumidity.Value
	}

	return &CurrentWeather{
		Summary:             now.ShortForecast,
		Temperature:         float64(now.Temperature),
		ApparentTemperature: float64(now.Temperature),
		High:                high,
		Low:                 low,
		Humidity:            humidity,
		WindSpeed:           float64(classify.ParseWindSpeed(now.WindSpeed)),
		UVIndex:             float64(classify.EstimateUVIndex(now.ShortForecast, now.IsDaytime)),
	}, nil
}

func (n *NWSProvider) AlertReport(ctx context.Context, lat, lon float64) (*AlertReport, error) {
	var al nwsAlerts
	alertsURL := fmt.Sprintf("%s/alerts/active?point=%s,%s", n.baseURL, formatCoord(lat), formatCoord(lon))
	if err := n.getJSON(ctx, alertsURL, n.header(), &al); err != nil {
		return nil, err
	}

	report := &AlertReport{Alerts: make([]Alert, 0, len(al.Features))}
	for _, f := range al.Features {
		p := f.Properties
		var expires int64
		if t, err := time.Parse(time.RFC3339, p.Expires); err == nil {
			expires = t.Unix()
		}
		var regions []string
		for _, r := range strings.Split(p.AreaDesc, ";") {
			if r = strings.TrimSpace(r); r != "" {
				regions = append(regions, r)
			}
		}
		report.Alerts = append(report.Alerts, Alert{
			Title:       p.Event,
			Description: p.Description,
			Severity:    nwsSeverity(p.Event),
			Expires:     expires,
			Regions:     regions,
		})
	}

	// Hazard checks only matter when nothing is active.
	if len(report.Alerts) == 0 {
		periods, err := n.periods(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
		now := periods[0]
		report.Conditions = classify.Conditions{
			WindSpeed:   float64(classify.ParseWindSpeed(now.WindSpeed)),
			Visibility:  10,
			Temperature: float64(now.Temperature),
		}
		if now.ProbabilityOfPrecipitation.Value != nil {
			report.Conditions.PrecipProbability = *now.ProbabilityOfPrecipitation.Value / 100
		}
	}
	return report, nil
}

// nwsSeverity maps an NWS event name onto the warning/watch/advisory scale
// the event name itself carries.
func nwsSeverity(event string) string {
	e := strings.ToLower(event)
	switch {
	case strings.HasSuffix(e, "warning"):
		return "warning"
	case strings.HasSuffix(e, "watch"):
		return "watch"
	default:
		return "advisory"
	}
}
