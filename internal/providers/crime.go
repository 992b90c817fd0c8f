package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CrimeReport is the incident set for one lookup. Types holds one label per
// incident in the order the source returned them.
type CrimeReport struct {
	Total int
	Types []string
}

// CrimeometerProvider queries Crimeometer raw incident data within a mile of
// the coordinates.
type CrimeometerProvider struct {
	base
	apiKey string
	now    func() time.Time
}

func NewCrimeometerProvider(apiKey string, deps Deps) *CrimeometerProvider {
	return &CrimeometerProvider{
		base:   deps.base("Crimeometer", "https://api.crimeometer.com/v1/incidents/raw-data"),
		apiKey: apiKey,
		now:    time.Now,
	}
}

type crimeometerResponse struct {
	TotalIncidents int `json:"total_incidents"`
	Incidents      []struct {
		IncidentOffense string `json:"incident_offense"`
		IncidentDate    string `json:"incident_date"`
	} `json:"incidents"`
}

func (c *CrimeometerProvider) IsAvailable() bool { return c.apiKey != "" }

func (c *CrimeometerProvider) Incidents(ctx context.Context, lat, lon float64, ori string) (*CrimeReport, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", c.Name(), ErrMissingAPIKey)
	}

	// Last two full calendar years.
	endYear := c.now().Year() - 1
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("distance", "1mi")
	q.Set("datetime_ini", fmt.Sprintf("%d-01-01T00:00:00.000Z", endYear-1))
	q.Set("datetime_end", fmt.Sprintf("%d-12-31T23:59:59.999Z", endYear))
	q.Set("page", "1")

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("x-api-key", c.apiKey)

	var resp crimeometerResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+q.Encode(), h, &resp); err != nil {
		return nil, fmt.Errorf("ori %s: %w", ori, err)
	}

	report := &CrimeReport{Types: make([]string, 0, len(resp.Incidents))}
	for _, in := range resp.Incidents {
		label := in.IncidentOffense
		if label == "" {
			label = "Unknown"
		}
		report.Types = append(report.Types, label)
	}
	report.Total = len(report.Types)
	if resp.TotalIncidents > report.Total {
		report.Total = resp.TotalIncidents
	}
	return report, nil
}

// SimulatedCrime returns a fixed three-incident set for any location.
type SimulatedCrime struct{}

func (SimulatedCrime) Name() string { return "simulated" }

func (SimulatedCrime) IsAvailable() bool { return true }

func (SimulatedCrime) Incidents(context.Context, float64, float64, string) (*CrimeReport, error) {
	return &CrimeReport{Total: 3, Types: []string{"Theft", "Vandalism", "Assault"}}, nil
}
