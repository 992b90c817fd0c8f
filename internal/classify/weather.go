package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// ConditionFromIcon is used when the provider sends no summary text.
func ConditionFromIcon(icon string) string {
	switch icon {
	case "clear-day", "clear-night":
		return "Clear"
	case "rain":
		return "Rain"
	case "snow":
		return "Snow"
	case "sleet":
		return "Sleet"
	case "wind":
		return "Windy"
	case "fog":
		return "Foggy"
	case "cloudy":
		return "Cloudy"
	case "partly-cloudy-day", "partly-cloudy-night":
		return "Partly Cloudy"
	default:
		return "Weather data available"
	}
}

type iconRule struct {
	needles []string
	icon    string
}

// first match wins
var iconRules = []iconRule{
	{[]string{"sun", "clear"}, "wb_sunny"},
	{[]string{"cloud"}, "cloud"},
	{[]string{"rain", "drizzle"}, "water_drop"},
	{[]string{"snow"}, "ac_unit"},
	{[]string{"fog", "mist"}, "filter_drama"},
	{[]string{"thunder", "storm"}, "thunderstorm"},
}

const DefaultWeatherIcon = "wb_sunny"

// WeatherIcon resolves the condition text to a Material icon tag.
func WeatherIcon(conditions string) string {
	c := strings.ToLower(conditions)
	for _, r := range iconRules {
		if containsAny(c, r.needles...) {
			return r.icon
		}
	}
	return DefaultWeatherIcon
}

// OutfitSuggestion picks one sentence by °F temperature band.
func OutfitSuggestion(temp int) string {
	switch {
	case temp > 85:
		return "Light clothing recommended. Stay hydrated and consider a hat for sun protection."
	case temp > 70:
		return "T-shirt and shorts or light pants are ideal. Consider a light jacket for the evening."
	case temp > 60:
		return "Long sleeves and pants recommended. A light jacket may be needed."
	case temp > 40:
		return "Jacket, sweater, and pants are recommended. Consider layering for comfort."
	default:
		return "Heavy coat, hat, scarf, and gloves are recommended. Layer clothing for warmth."
	}
}

// ItemsToCarry tests each rule independently; items from several rules combine.
func ItemsToCarry(conditions string, temp int) []string {
	c := strings.ToLower(conditions)
	items := []string{}
	if containsAny(c, "rain", "drizzle") {
		items = append(items, "Umbrella", "Rain boots")
	}
	if containsAny(c, "thunder", "lightning") {
		items = append(items, "Stay indoors if possible")
	}
	if containsAny(c, "sun", "clear") {
		items = append(items, "Sunglasses", "Hat", "Sunscreen")
	}
	if temp < 40 {
		items = append(items, "Gloves", "Warm hat")
	}
	return items
}

var digitsRe = regexp.MustCompile(`\d+`)

// ParseWindSpeed reads NWS-style wind text. A range such as "10 to 20 mph"
// yields its rounded midpoint; text without digits yields 0.
func ParseWindSpeed(s string) int {
	m := digitsRe.FindAllString(s, -1)
	if len(m) == 0 {
		return 0
	}
	lo, _ := strconv.Atoi(m[0])
	if len(m) > 1 {
		hi, _ := strconv.Atoi(m[1])
		return Round(float64(lo+hi) / 2)
	}
	return lo
}

var humidityRe = regexp.MustCompile(`(?i)humidity (?:is )?around (\d+)%`)

const DefaultHumidity = 45

// HumidityFromText pulls "humidity around N%" out of a detailed forecast.
func HumidityFromText(detailed string) int {
	m := humidityRe.FindStringSubmatch(detailed)
	if len(m) < 2 {
		return DefaultHumidity
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultHumidity
	}
	return v
}

// EstimateUVIndex guesses a UV index from the forecast text when the source
// does not report one.
func EstimateUVIndex(conditions string, daytime bool) int {
	if !daytime {
		return 0
	}
	c := strings.ToLower(conditions)
	switch {
	case containsAny(c, "clear", "sunny"):
		return 7
	case strings.Contains(c, "partly") && strings.Contains(c, "cloud"):
		return 5
	case strings.Contains(c, "cloud"):
		return 3
	case containsAny(c, "rain", "shower"):
		return 2
	default:
		return 4
	}
}

const (
	rainyBackground   = "https://images.unsplash.com/photo-1534274988757-a28bf1a57c17?auto=format&fit=crop&w=1200&h=800"
	cloudyBackground  = "https://images.unsplash.com/photo-1513172128806-2d00531a9f20?auto=format&fit=crop&w=1200&h=800"
	snowyBackground   = "https://images.unsplash.com/photo-1517299321609-52687d1bc55a?auto=format&fit=crop&w=1200&h=800"
	foggyBackground   = "https://images.unsplash.com/photo-1482841628122-9080d44bb807?auto=format&fit=crop&w=1200&h=800"
	DefaultBackground = "https://images.unsplash.com/photo-1617839997367-13bbe4790e6d?auto=format&fit=crop&w=1200&h=800"
)

// BackgroundImage picks a backdrop URL for the condition text.
func BackgroundImage(conditions string) string {
	c := strings.ToLower(conditions)
	switch {
	case containsAny(c, "rain", "shower"):
		return rainyBackground
	case strings.Contains(c, "cloud"):
		return cloudyBackground
	case strings.Contains(c, "snow"):
		return snowyBackground
	case containsAny(c, "fog", "mist"):
		return foggyBackground
	default:
		return DefaultBackground
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
