package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nitesh/risk_dashboard/internal/classify"
	"github.com/nitesh/risk_dashboard/internal/providers"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

// jurisdictionORI maps coordinates to a police agency identifier. Only one
// agency is known, so every point resolves to it.
func jurisdictionORI(lat, lon float64) string {
	return "NJ0090100"
}

func (s *Service) Safety(ctx context.Context, lat, lon float64) (*models.SafetyRecord, error) {
	rec, err := s.safety(ctx, lat, lon)
	return resolve(s, DomainSafety, rec, err, degradedSafety)
}

func (s *Service) safety(ctx context.Context, lat, lon float64) (*models.SafetyRecord, error) {
	report, err := s.src.Crime.Incidents(ctx, lat, lon, jurisdictionORI(lat, lon))
	if err != nil {
		return nil, err
	}
	level := classify.SafetyLevel(report.Total)
	return &models.SafetyRecord{
		LevelText:       string(level),
		Level:           level,
		Tips:            classify.SafetyTips(level),
		RecentIncidents: fmt.Sprintf("%d reported incidents in last 30 days", report.Total),
		MostCommon:      classify.SanitizeCrimeLabel(classify.MostCommon(report.Types)),
	}, nil
}

func degradedSafety() *models.SafetyRecord {
	return &models.SafetyRecord{
		LevelText:       string(models.SafetyModerate),
		Level:           models.SafetyModerate,
		Tips:            classify.SafetyTips(models.SafetyModerate),
		RecentIncidents: "3 in last 7 days",
		MostCommon:      "Theft",
	}
}

func (s *Service) Fire(ctx context.Context, lat, lon float64) (*models.FireRecord, error) {
	rec, err := s.fire(ctx, lat, lon)
	return resolve(s, DomainFire, rec, err, degradedFire)
}

func (s *Service) fire(ctx context.Context, lat, lon float64) (*models.FireRecord, error) {
	report, err := s.src.Fire.Activity(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	status, statusText := classify.FireStatus(report.Incidents)
	return &models.FireRecord{
		StatusText:     statusText,
		Status:         status,
		RiskLevel:      classify.FireRiskLevel(report.RiskLevel),
		RiskPercentage: classify.Round(report.RiskLevel),
		NearestStation: nearestStation(report.Stations),
	}, nil
}

// nearestStation renders the closest station. On equal distances the later
// entry wins.
func nearestStation(stations []providers.FireStation) string {
	if len(stations) == 0 {
		return "Unknown"
	}
	best := stations[0]
	for _, st := range stations[1:] {
		if st.Distance <= best.Distance {
			best = st
		}
	}
	return fmt.Sprintf("%s - %s miles away", best.Name, strconv.FormatFloat(best.Distance, 'f', -1, 64))
}

func degradedFire() *models.FireRecord {
	return &models.FireRecord{
		StatusText:     "Data Unavailable",
		Status:         models.FireNoIncidents,
		RiskLevel:      "Unknown",
		NearestStation: "Unknown",
	}
}

const evUnavailable = "EV charging data unavailable"

func (s *Service) Traffic(ctx context.Context, lat, lon float64) (*models.TrafficRecord, error) {
	rec, err := s.traffic(ctx, lat, lon)
	return resolve(s, DomainTraffic, rec, err, degradedTraffic)
}

func (s *Service) traffic(ctx context.Context, lat, lon float64) (*models.TrafficRecord, error) {
	if !available(s.src.Traffic) {
		return nil, fmt.Errorf("traffic: %w", providers.ErrMissingAPIKey)
	}
	flow, err := s.src.Traffic.Flow(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	status := classify.TrafficStatus(flow.CurrentSpeed, flow.FreeFlowSpeed)

	rec := &models.TrafficRecord{
		StatusText: status,
		CommuteTime: fmt.Sprintf("%d mins (normally %d mins)",
			classify.Round(flow.CurrentTravelTime/60), classify.Round(flow.FreeFlowTravelTime/60)),
		Incident:   "No major incidents reported",
		BestTime:   "Current time is good",
		EVCharging: s.evCharging(ctx, lat, lon),
	}
	if status == "Severe" {
		rec.Incident = "Heavy traffic conditions"
	}
	if status == "Heavy" || status == "Severe" {
		rec.BestTime = "After 7pm"
	}
	return rec, nil
}

// evCharging never fails the traffic fetch.
func (s *Service) evCharging(ctx context.Context, lat, lon float64) string {
	st, err := s.src.Traffic.NearestCharger(ctx, lat, lon)
	if err != nil {
		if !errors.Is(err, providers.ErrMissingAPIKey) {
			s.log.Warn("ev charging lookup failed", "err", err)
		}
		return evUnavailable
	}
	if st == nil {
		return "No nearby charging stations found"
	}
	return fmt.Sprintf("Nearest charging station: %s (%s, %dm away)", st.Name, st.Street, classify.Round(st.Distance))
}

func degradedTraffic() *models.TrafficRecord {
	return &models.TrafficRecord{
		StatusText:    "Moderate",
		CommuteTime:   "15-20 mins",
		Incident:      "Unable to fetch real-time traffic data",
		PublicTransit: "Check local schedule",
		BestTime:      "Check traffic apps",
		EVCharging:    evUnavailable,
	}
}
