package classify

import (
	"math"
	"reflect"
	"testing"

	"github.com/nitesh/risk_dashboard/pkg/models"
)

func TestConvertAQI(t *testing.T) {
	want := map[int]int{1: 30, 2: 75, 3: 125, 4: 175, 5: 300, 0: 50, 6: 50, -1: 50}
	for in, exp := range want {
		if got := ConvertAQI(in); got != exp {
			t.Errorf("ConvertAQI(%d) = %d, want %d", in, got, exp)
		}
	}
}

func TestAirQualityTextBuckets(t *testing.T) {
	cases := []struct {
		aqi  int
		want string
	}{
		{0, "Good"}, {50, "Good"},
		{51, "Moderate"}, {100, "Moderate"},
		{101, "Unhealthy for Sensitive Groups"}, {150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"}, {200, "Unhealthy"},
		{201, "Very Unhealthy"}, {300, "Very Unhealthy"},
		{301, "Hazardous"}, {500, "Hazardous"},
	}
	for _, c := range cases {
		if got := AirQualityText(c.aqi); got != c.want {
			t.Errorf("AirQualityText(%d) = %q, want %q", c.aqi, got, c.want)
		}
	}
}

func TestPollutantPercentages(t *testing.T) {
	if got := PM25Percentage(30); math.Abs(got-54.15) > 0.01 {
		t.Errorf("PM25Percentage(30) = %f", got)
	}
	if got := PM25Percentage(200); got != 100 {
		t.Errorf("PM25Percentage should cap at 100, got %f", got)
	}
	ppb := OzonePPB(100)
	if ppb != 50 {
		t.Fatalf("OzonePPB(100) = %d, want 50", ppb)
	}
	if got := OzonePercentage(ppb); math.Abs(got-58.82) > 0.01 {
		t.Errorf("OzonePercentage(50) = %f", got)
	}
	if got := OzonePercentage(400); got != 100 {
		t.Errorf("OzonePercentage should cap at 100, got %f", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{2.5: 3, -2.5: -2, 2.49: 2, -0.4: 0, 71.6: 72}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestTrafficStatusBoundaries(t *testing.T) {
	cases := []struct {
		current float64
		want    string
	}{
		{81, "Light"},
		{80, "Moderate"},
		{61, "Moderate"},
		{60, "Heavy"},
		{41, "Heavy"},
		{40, "Severe"},
		{39, "Severe"},
	}
	for _, c := range cases {
		if got := TrafficStatus(c.current, 100); got != c.want {
			t.Errorf("TrafficStatus(%v/100) = %q, want %q", c.current, got, c.want)
		}
	}
	if got := TrafficStatus(30, 0); got != "Moderate" {
		t.Errorf("zero free-flow speed should read Moderate, got %q", got)
	}
}

func TestFireStatus(t *testing.T) {
	cases := []struct {
		n        int
		status   models.FireStatus
		statusTx string
	}{
		{0, models.FireNoIncidents, "No Incidents"},
		{1, models.FireCaution, "Active Incident"},
		{2, models.FireCaution, "Active Incident"},
		{3, models.FireDanger, "Multiple Incidents"},
		{12, models.FireDanger, "Multiple Incidents"},
	}
	for _, c := range cases {
		s, tx := FireStatus(c.n)
		if s != c.status || tx != c.statusTx {
			t.Errorf("FireStatus(%d) = (%q, %q), want (%q, %q)", c.n, s, tx, c.status, c.statusTx)
		}
	}
}

func TestFireRiskLevel(t *testing.T) {
	cases := map[float64]string{0: "Low", 32.9: "Low", 33: "Moderate", 65.9: "Moderate", 66: "High", 100: "High"}
	for in, want := range cases {
		if got := FireRiskLevel(in); got != want {
			t.Errorf("FireRiskLevel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSafetyLevel(t *testing.T) {
	cases := map[int]models.SafetyLevel{0: models.SafetyLow, 100: models.SafetyLow, 101: models.SafetyModerate, 300: models.SafetyModerate, 301: models.SafetyHigh}
	for in, want := range cases {
		if got := SafetyLevel(in); got != want {
			t.Errorf("SafetyLevel(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeCrimeLabel(t *testing.T) {
	cases := map[string]string{
		"Aggravated-Assault": "Aggravated safety incident",
		"VIOLENT crime":      "safety incident crime",
		"Theft":              "Theft",
		" Attack- ":          "safety incident",
	}
	for in, want := range cases {
		if got := SanitizeCrimeLabel(in); got != want {
			t.Errorf("SanitizeCrimeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMostCommonTieGoesToFirstSeen(t *testing.T) {
	if got := MostCommon([]string{"Theft", "Vandalism", "Assault"}); got != "Theft" {
		t.Errorf("got %q, want Theft", got)
	}
	if got := MostCommon([]string{"Vandalism", "Theft", "Theft"}); got != "Theft" {
		t.Errorf("got %q, want Theft", got)
	}
	if got := MostCommon(nil); got != "None" {
		t.Errorf("got %q, want None", got)
	}
}

func TestAlertLevelIsOrderIndependent(t *testing.T) {
	if got := AlertLevel([]string{"advisory", "warning"}); got != models.AlertWarning {
		t.Errorf("advisory,warning = %q", got)
	}
	if got := AlertLevel([]string{"warning", "advisory"}); got != models.AlertWarning {
		t.Errorf("warning,advisory = %q", got)
	}
	if got := AlertLevel([]string{"advisory", "watch"}); got != models.AlertWatch {
		t.Errorf("advisory,watch = %q", got)
	}
	if got := AlertLevel([]string{"advisory"}); got != models.AlertAdvisory {
		t.Errorf("advisory = %q", got)
	}
	if got := AlertLevel(nil); got != models.AlertNone {
		t.Errorf("empty = %q", got)
	}
}

func TestHighestSeverity(t *testing.T) {
	if got := HighestSeverity([]string{"advisory", "watch", "warning", "warning"}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := HighestSeverity(nil); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestAlertRecommendationKeywords(t *testing.T) {
	if got := AlertRecommendation("Flash Flood Warning"); got[:5] != "Avoid" {
		t.Errorf("flood: %q", got)
	}
	if got := AlertRecommendation("Severe Thunderstorm Watch"); got[:4] != "Seek" {
		t.Errorf("thunder: %q", got)
	}
	if got := AlertRecommendation("Excessive Heat Warning"); got[:4] != "Stay" {
		t.Errorf("heat: %q", got)
	}
	if got := AlertRecommendation("Air Stagnation Advisory"); got != "Stay informed and follow instructions from local authorities. Prepare an emergency kit and have a plan in place." {
		t.Errorf("default: %q", got)
	}
}

func TestHazards(t *testing.T) {
	got := Hazards(Conditions{WindSpeed: 30, PrecipIntensity: 0.5, PrecipProbability: 0.9, Visibility: 10, Temperature: 10})
	want := []string{"Strong winds", "Heavy precipitation", "Extreme cold"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hazards = %v, want %v", got, want)
	}
	if got := Hazards(Conditions{PrecipIntensity: 0.5, PrecipProbability: 0.8, Visibility: 10, Temperature: 60}); len(got) != 0 {
		t.Errorf("probability must exceed 0.8, got %v", got)
	}
}

func TestWeatherIconFirstMatchWins(t *testing.T) {
	cases := map[string]string{
		"Clear":                  "wb_sunny",
		"Mostly Cloudy":          "cloud",
		"Light Rain":             "water_drop",
		"Snow":                   "ac_unit",
		"Mist":                   "filter_drama",
		"Thunderstorms":          "thunderstorm",
		"Sunny then Rain":        "wb_sunny",
		"Weather data available": "wb_sunny",
	}
	for in, want := range cases {
		if got := WeatherIcon(in); got != want {
			t.Errorf("WeatherIcon(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestItemsToCarryCombine(t *testing.T) {
	got := ItemsToCarry("Rain and Thunder", 35)
	want := []string{"Umbrella", "Rain boots", "Stay indoors if possible", "Gloves", "Warm hat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ItemsToCarry = %v, want %v", got, want)
	}
	if got := ItemsToCarry("Overcast", 65); len(got) != 0 {
		t.Errorf("expected no items, got %v", got)
	}
}

func TestOutfitSuggestionBands(t *testing.T) {
	temps := []int{90, 85, 70, 60, 40}
	seen := map[string]bool{}
	for _, tmp := range temps {
		seen[OutfitSuggestion(tmp)] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected five distinct bands, got %d", len(seen))
	}
	if OutfitSuggestion(85) != OutfitSuggestion(71) {
		t.Error("85 and 71 should share the >70 band")
	}
}

func TestParseWindSpeed(t *testing.T) {
	cases := map[string]int{"10 to 20 mph": 15, "5 to 10 mph": 8, "12 mph": 12, "calm": 0}
	for in, want := range cases {
		if got := ParseWindSpeed(in); got != want {
			t.Errorf("ParseWindSpeed(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestHumidityFromText(t *testing.T) {
	if got := HumidityFromText("Sunny. Humidity is around 62%."); got != 62 {
		t.Errorf("got %d, want 62", got)
	}
	if got := HumidityFromText("Sunny."); got != DefaultHumidity {
		t.Errorf("got %d, want %d", got, DefaultHumidity)
	}
}

func TestEstimateUVIndex(t *testing.T) {
	if got := EstimateUVIndex("Sunny", false); got != 0 {
		t.Errorf("night should be 0, got %d", got)
	}
	if got := EstimateUVIndex("Partly Cloudy", true); got != 5 {
		t.Errorf("partly cloudy = %d", got)
	}
	if got := EstimateUVIndex("Chance Rain Showers", true); got != 2 {
		t.Errorf("showers = %d", got)
	}
}

func TestBackgroundImage(t *testing.T) {
	if BackgroundImage("Light Rain") != rainyBackground {
		t.Error("rain should pick the rainy backdrop")
	}
	if BackgroundImage("Partly Cloudy") != cloudyBackground {
		t.Error("cloud should pick the cloudy backdrop")
	}
	if BackgroundImage("Clear") != DefaultBackground {
		t.Error("clear should pick the default backdrop")
	}
}
