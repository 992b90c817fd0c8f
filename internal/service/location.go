package service

import "github.com/nitesh/risk_dashboard/pkg/models"

const unknownLocation = "Unknown Location"

type boundingBox struct {
	name           string
	minLat, maxLat float64
	minLon, maxLon float64
}

// knownPlaces is checked in order; the first containing box wins. Edges are
// inclusive.
var knownPlaces = []boundingBox{
	{"Hoboken, NJ", 40.735, 40.748, -74.035, -74.020},
	{"New York, NY", 40.70, 40.78, -74.02, -73.95},
	{"San Francisco, CA", 37.75, 37.80, -122.45, -122.40},
	{"London, UK", 51.50, 51.52, -0.13, -0.12},
	{"Tokyo, Japan", 35.67, 35.68, 139.64, 139.66},
	{"Sydney, Australia", -33.87, -33.86, 151.20, 151.22},
}

func (b boundingBox) contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon
}

// Location names the coordinates from a fixed table. It makes no network
// calls and never fails.
func (s *Service) Location(lat, lon float64) models.LocationInfo {
	name := unknownLocation
	for _, b := range knownPlaces {
		if b.contains(lat, lon) {
			name = b.name
			break
		}
	}
	s.log.Debug("location resolved", "lat", lat, "lon", lon, "name", name)
	return models.LocationInfo{Name: name, Latitude: lat, Longitude: lon}
}
