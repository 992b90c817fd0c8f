package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nitesh/risk_dashboard/internal/classify"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

// displayTime is how alert expiry and refresh times are rendered (UTC).
const displayTime = "1/2/2006, 3:04:05 PM"

func (s *Service) DisasterAlerts(ctx context.Context, lat, lon float64) (*models.DisasterAlertRecord, error) {
	rec, err := s.disasterAlerts(ctx, lat, lon)
	return resolve(s, DomainDisasters, rec, err, s.degradedAlerts)
}

func (s *Service) disasterAlerts(ctx context.Context, lat, lon float64) (*models.DisasterAlertRecord, error) {
	report, err := s.src.Alerts.AlertReport(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	severities := make([]string, len(report.Alerts))
	alerts := make([]models.DisasterAlert, 0, len(report.Alerts)+1)
	for i, a := range report.Alerts {
		severities[i] = a.Severity
		alerts = append(alerts, models.DisasterAlert{
			Title:       a.Title,
			Description: firstSentence(a.Description),
			Type:        a.Severity,
			Expires:     time.Unix(a.Expires, 0).UTC().Format(displayTime),
			Regions:     strings.Join(a.Regions, ", "),
		})
	}

	// Status comes from provider alerts only; a synthesized hazard never
	// raises it.
	level := classify.AlertLevel(severities)
	recommendation := classify.NoAlertsRecommendation
	if i := classify.HighestSeverity(severities); i >= 0 {
		recommendation = classify.AlertRecommendation(report.Alerts[i].Title)
	}

	if len(alerts) == 0 {
		if hazards := classify.Hazards(report.Conditions); len(hazards) > 0 {
			alerts = append(alerts, models.DisasterAlert{
				Title:       "Potential Weather Hazard",
				Description: fmt.Sprintf("Current conditions indicate possible %s.", strings.Join(hazards, ", ")),
				Type:        "advisory",
				Expires:     "Unknown",
				Regions:     "Your area",
			})
		}
	}

	statusText := "No Alerts"
	if level != models.AlertNone {
		statusText = string(level) + " In Effect"
	}
	return &models.DisasterAlertRecord{
		StatusText:      statusText,
		Status:          level,
		StatusColor:     classify.AlertColor(level),
		Recommendations: recommendation,
		Alerts:          alerts,
		LastUpdated:     s.now().UTC().Format(displayTime),
	}, nil
}

// firstSentence keeps the text up to the first period and terminates it
// with one.
func firstSentence(s string) string {
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	return s + "."
}

func (s *Service) degradedAlerts() *models.DisasterAlertRecord {
	return &models.DisasterAlertRecord{
		StatusText:      "Alert Status Unknown",
		Status:          models.AlertNone,
		StatusColor:     "gray",
		Recommendations: "Unable to retrieve alert data. Please check official weather services for information.",
		Alerts:          []models.DisasterAlert{},
		LastUpdated:     s.now().UTC().Format(displayTime),
	}
}
