// Package classify turns raw provider numbers and labels into the discrete
// levels and display text the dashboard shows. Everything here is pure.
package classify

import "math"

// Round rounds half up (toward +Inf), so Round(-2.5) == -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ConvertAQI maps the OpenWeather 1..5 category to a representative value on
// the 0-500 EPA scale.
func ConvertAQI(category int) int {
	switch category {
	case 1:
		return 30
	case 2:
		return 75
	case 3:
		return 125
	case 4:
		return 175
	case 5:
		return 300
	default:
		return 50
	}
}

// AirQualityText returns the EPA bucket label for a rescaled AQI.
func AirQualityText(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// AirQualityRecommendation returns the health sentence for the AQI bucket.
func AirQualityRecommendation(aqi int) string {
	switch {
	case aqi <= 50:
		return "Air quality is good. It's a great day for outdoor activities."
	case aqi <= 100:
		return "Air quality is acceptable. Unusually sensitive people should consider reducing prolonged outdoor exertion."
	case aqi <= 150:
		return "Members of sensitive groups may experience health effects. Reduce prolonged or heavy outdoor exertion."
	case aqi <= 200:
		return "Everyone may begin to experience health effects. Sensitive groups should avoid prolonged outdoor exertion."
	case aqi <= 300:
		return "Health warnings of emergency conditions. Everyone should avoid outdoor activities."
	default:
		return "Health alert: everyone may experience more serious health effects. Avoid all outdoor physical activities."
	}
}

const (
	pm25Threshold  = 55.4
	ozoneThreshold = 85.0
)

// PM25Percentage is the share of the 55.4 µg/m³ threshold, capped at 100.
func PM25Percentage(pm25 float64) float64 {
	return math.Min(pm25/pm25Threshold*100, 100)
}

// OzonePPB converts the provider's µg/m³ ozone reading to ppb by halving.
func OzonePPB(o3 float64) int {
	return Round(o3 / 2)
}

// OzonePercentage is the share of the 85 ppb threshold, capped at 100.
func OzonePercentage(ppb int) float64 {
	return math.Min(float64(ppb)/ozoneThreshold*100, 100)
}
