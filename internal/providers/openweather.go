package providers

import (
	"context"
	"fmt"
	"net/url"
)

// AirSample is the first air-pollution reading for a point. AQI is
// OpenWeather's 1-5 category, PM25 and O3 are µg/m³.
type AirSample struct {
	AQI  int
	PM25 float64
	O3   float64
}

type OpenWeatherProvider struct {
	base
	apiKey string
}

func NewOpenWeatherProvider(apiKey string, deps Deps) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		base:   deps.base("OpenWeather", "https://api.openweathermap.org/data/2.5/air_pollution"),
		apiKey: apiKey,
	}
}

type openWeatherAirResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			PM25 float64 `json:"pm2_5"`
			O3   float64 `json:"o3"`
		} `json:"components"`
		Dt int64 `json:"dt"`
	} `json:"list"`
}

func (o *OpenWeatherProvider) IsAvailable() bool { return o.apiKey != "" }

func (o *OpenWeatherProvider) AirPollution(ctx context.Context, lat, lon float64) (*AirSample, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", o.Name(), ErrMissingAPIKey)
	}
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("appid", o.apiKey)

	var resp openWeatherAirResponse
	if err := o.getJSON(ctx, o.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.List) == 0 {
		return nil, fmt.Errorf("%s: %w", o.Name(), ErrNoData)
	}
	first := resp.List[0]
	return &AirSample{
		AQI:  first.Main.AQI,
		PM25: first.Components.PM25,
		O3:   first.Components.O3,
	}, nil
}
