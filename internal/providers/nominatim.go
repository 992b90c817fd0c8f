package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// NominatimProvider reverse-geocodes coordinates through OpenStreetMap.
type NominatimProvider struct {
	base
	userAgent string
}

func NewNominatimProvider(userAgent string, deps Deps) *NominatimProvider {
	if userAgent == "" {
		userAgent = "CommunityRiskMonitor/1.0"
	}
	return &NominatimProvider{
		base:      deps.base("Nominatim", "https://nominatim.openstreetmap.org/reverse"),
		userAgent: userAgent,
	}
}

func (n *NominatimProvider) IsAvailable() bool { return true }

type nominatimResponse struct {
	Address *struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

// PlaceName returns "City, State" when both are known, otherwise the most
// specific of city, town, village, county and state. It returns "" when the
// address is empty.
func (n *NominatimProvider) PlaceName(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("zoom", "10")

	h := http.Header{}
	h.Set("User-Agent", n.userAgent)

	var resp nominatimResponse
	if err := n.getJSON(ctx, n.baseURL+"?"+q.Encode(), h, &resp); err != nil {
		return "", err
	}
	if resp.Address == nil {
		return "", nil
	}
	a := resp.Address
	if a.City != "" && a.State != "" {
		return fmt.Sprintf("%s, %s", a.City, a.State), nil
	}
	for _, s := range []string{a.City, a.Town, a.Village, a.County, a.State} {
		if s != "" {
			return s, nil
		}
	}
	return "", nil
}
