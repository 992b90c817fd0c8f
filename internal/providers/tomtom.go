package providers

import (
	"context"
	"fmt"
	"net/url"
)

// TrafficFlow is the flow segment nearest a point. Speeds are km/h, travel
// times are seconds.
type TrafficFlow struct {
	CurrentSpeed       float64
	FreeFlowSpeed      float64
	CurrentTravelTime  float64
	FreeFlowTravelTime float64
}

// ChargingStation is a TomTom EV charging POI. Distance is metres.
type ChargingStation struct {
	Name     string
	Street   string
	Distance float64
}

type TomTomProvider struct {
	base
	apiKey string
}

func NewTomTomProvider(apiKey string, deps Deps) *TomTomProvider {
	return &TomTomProvider{
		base:   deps.base("TomTom", "https://api.tomtom.com"),
		apiKey: apiKey,
	}
}

func (t *TomTomProvider) IsAvailable() bool { return t.apiKey != "" }

type tomTomFlowResponse struct {
	FlowSegmentData struct {
		CurrentSpeed       float64 `json:"currentSpeed"`
		FreeFlowSpeed      float64 `json:"freeFlowSpeed"`
		Confidence         float64 `json:"confidence"`
		CurrentTravelTime  float64 `json:"currentTravelTime"`
		FreeFlowTravelTime float64 `json:"freeFlowTravelTime"`
	} `json:"flowSegmentData"`
}

type tomTomSearchResponse struct {
	Results []struct {
		Poi struct {
			Name string `json:"name"`
		} `json:"poi"`
		Address struct {
			StreetName string `json:"streetName"`
		} `json:"address"`
		Distance float64 `json:"dist"`
	} `json:"results"`
}

func (t *TomTomProvider) Flow(ctx context.Context, lat, lon float64) (*TrafficFlow, error) {
	if !t.IsAvailable() {
		return nil, fmt.Errorf("%s: %w", t.Name(), ErrMissingAPIKey)
	}
	q := url.Values{}
	q.Set("point", formatCoord(lat)+","+formatCoord(lon))
	q.Set("key", t.apiKey)

	var resp tomTomFlowResponse
	reqURL := t.baseURL + "/traffic/services/4/flowSegmentData/relative/10/json?" + q.Encode()
	if err := t.getJSON(ctx, reqURL, nil, &resp); err != nil {
		return nil, err
	}
	f := resp.FlowSegmentData
	return &TrafficFlow{
		CurrentSpeed:       f.CurrentSpeed,
		FreeFlowSpeed:      f.FreeFlowSpeed,
		CurrentTravelTime:  f.CurrentTravelTime,
		FreeFlowTravelTime: f.FreeFlowTravelTime,
	}, nil
}

// NearestCharger returns the first EV charging result within 5 km, or nil
// when there is none.
func (t *TomTomProvider) NearestCharger(ctx context.Context, lat, lon float64) (*ChargingStation, error) {
	if !t.IsAvailable() {
		return nil, fmt.Errorf("%s: %w", t.Name(), ErrMissingAPIKey)
	}
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("radius", "5000")
	q.Set("key", t.apiKey)

	var resp tomTomSearchResponse
	reqURL := t.baseURL + "/search/2/categorySearch/electric-vehicle-charging.json?" + q.Encode()
	if err := t.getJSON(ctx, reqURL, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	r := resp.Results[0]
	return &ChargingStation{Name: r.Poi.Name, Street: r.Address.StreetName, Distance: r.Distance}, nil
}
