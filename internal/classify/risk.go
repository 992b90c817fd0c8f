package classify

import (
	"regexp"
	"strings"

	"github.com/nitesh/risk_dashboard/pkg/models"
)

// TrafficStatus classifies the currentSpeed/freeFlowSpeed ratio. The
// comparisons are strict, so a ratio of exactly 0.8 is Moderate. A
// non-positive free-flow speed carries no information and reads as Moderate.
func TrafficStatus(currentSpeed, freeFlowSpeed float64) string {
	if freeFlowSpeed <= 0 {
		return "Moderate"
	}
	ratio := currentSpeed / freeFlowSpeed
	switch {
	case ratio > 0.8:
		return "Light"
	case ratio > 0.6:
		return "Moderate"
	case ratio > 0.4:
		return "Heavy"
	default:
		return "Severe"
	}
}

// FireStatus maps the active incident count to a status and its display text.
func FireStatus(incidents int) (models.FireStatus, string) {
	switch {
	case incidents <= 0:
		return models.FireNoIncidents, "No Incidents"
	case incidents <= 2:
		return models.FireCaution, "Active Incident"
	default:
		return models.FireDanger, "Multiple Incidents"
	}
}

// FireRiskLevel buckets a 0-100 risk score.
func FireRiskLevel(score float64) string {
	switch {
	case score < 33:
		return "Low"
	case score < 66:
		return "Moderate"
	default:
		return "High"
	}
}

// SafetyLevel buckets a 30-day incident count.
func SafetyLevel(total int) models.SafetyLevel {
	switch {
	case total <= 100:
		return models.SafetyLow
	case total <= 300:
		return models.SafetyModerate
	default:
		return models.SafetyHigh
	}
}

func SafetyTips(level models.SafetyLevel) string {
	switch level {
	case models.SafetyLow:
		return "Normal precautions are sufficient. Be aware of your surroundings, especially at night."
	case models.SafetyModerate:
		return "Stay aware of your surroundings. Keep valuables out of sight when walking in public spaces."
	default:
		return "Exercise heightened caution. Avoid walking alone at night and stay in well-lit areas. Keep valuables secure and out of sight."
	}
}

var violentTerms = regexp.MustCompile(`(?i)violent|assault|attack`)

// SanitizeCrimeLabel keeps specific violent-crime terms off the dashboard.
func SanitizeCrimeLabel(label string) string {
	s := strings.ReplaceAll(label, "-", " ")
	s = violentTerms.ReplaceAllString(s, "safety incident")
	return strings.TrimSpace(s)
}

// MostCommon returns the label with the highest count. Ties go to the label
// seen first; an empty input yields "None".
func MostCommon(labels []string) string {
	counts := make(map[string]int)
	order := []string{}
	for _, l := range labels {
		if _, ok := counts[l]; !ok {
			order = append(order, l)
		}
		counts[l]++
	}
	best, max := "None", 0
	for _, l := range order {
		if counts[l] > max {
			best, max = l, counts[l]
		}
	}
	return best
}

func severityRank(severity string) int {
	switch strings.ToLower(severity) {
	case "warning":
		return 3
	case "watch":
		return 2
	default:
		return 1
	}
}

// AlertLevel collapses alert severities into one overall level. Any alert
// that is neither a warning nor a watch counts as an advisory.
func AlertLevel(severities []string) models.AlertLevel {
	if len(severities) == 0 {
		return models.AlertNone
	}
	top := 0
	for _, s := range severities {
		if r := severityRank(s); r > top {
			top = r
		}
	}
	switch top {
	case 3:
		return models.AlertWarning
	case 2:
		return models.AlertWatch
	default:
		return models.AlertAdvisory
	}
}

// HighestSeverity returns the index of the first alert with the highest rank,
// or -1 for an empty list.
func HighestSeverity(severities []string) int {
	idx, top := -1, 0
	for i, s := range severities {
		if r := severityRank(s); r > top {
			idx, top = i, r
		}
	}
	return idx
}

func AlertColor(level models.AlertLevel) string {
	switch level {
	case models.AlertWarning:
		return "red"
	case models.AlertWatch:
		return "orange"
	case models.AlertAdvisory:
		return "yellow"
	default:
		return "green"
	}
}

const NoAlertsRecommendation = "No active weather alerts. Continue with normal activities."

// AlertRecommendation picks a safety sentence from keywords in an alert title.
func AlertRecommendation(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "flood"):
		return "Avoid low-lying areas and stay away from streams, rivers, and creeks. Do not drive through flooded roads."
	case containsAny(t, "thunder", "lightning"):
		return "Seek indoor shelter immediately. Stay away from windows and avoid using electrical appliances or plumbing."
	case strings.Contains(t, "tornado"):
		return "Seek shelter in a basement or interior room on the lowest floor. Stay away from windows and protect your head."
	case containsAny(t, "winter", "snow", "ice"):
		return "Limit travel and stay indoors if possible. If you must travel, keep an emergency kit in your vehicle."
	case strings.Contains(t, "heat"):
		return "Stay in air-conditioned areas, drink plenty of fluids, and limit outdoor activities during the hottest part of the day."
	case strings.Contains(t, "wind"):
		return "Secure loose outdoor objects, stay away from windows, and be cautious when driving high-profile vehicles."
	default:
		return "Stay informed and follow instructions from local authorities. Prepare an emergency kit and have a plan in place."
	}
}

// Conditions are the raw readings checked for hazards when a provider sends
// no alerts.
type Conditions struct {
	WindSpeed         float64
	PrecipIntensity   float64
	PrecipProbability float64
	Visibility        float64
	Temperature       float64
}

// Hazards lists every threshold the conditions exceed, in a fixed order.
func Hazards(c Conditions) []string {
	var out []string
	if c.WindSpeed > 25 {
		out = append(out, "Strong winds")
	}
	if c.PrecipIntensity > 0.4 && c.PrecipProbability > 0.8 {
		out = append(out, "Heavy precipitation")
	}
	if c.Visibility < 1 {
		out = append(out, "Low visibility")
	}
	if c.Temperature > 95 {
		out = append(out, "Extreme heat")
	}
	if c.Temperature < 20 {
		out = append(out, "Extreme cold")
	}
	return out
}
