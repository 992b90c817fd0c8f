package models

// LocationInfo is the resolved place name for a coordinate pair.
type LocationInfo struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherRecord holds current conditions plus today's forecast, in °F and mph.
type WeatherRecord struct {
	Temperature      int      `json:"temperature"`
	Conditions       string   `json:"conditions"`
	High             int      `json:"high"`
	Low              int      `json:"low"`
	FeelsLike        int      `json:"feelsLike"`
	OutfitSuggestion string   `json:"outfitSuggestion"`
	ItemsToCarry     []string `json:"itemsToCarry"`
	Humidity         int      `json:"humidity"`
	Wind             int      `json:"wind"`
	UVIndex          int      `json:"uvIndex"`
	Icon             string   `json:"icon"`
}

// EnvironmentRecord is an air quality snapshot. AirQualityIndex is the
// rescaled 0-500 value, not the provider's 1-5 category.
type EnvironmentRecord struct {
	AirQualityText  string  `json:"airQualityText"`
	AirQualityIndex int     `json:"airQualityIndex"`
	Recommendation  string  `json:"recommendation"`
	PM25            string  `json:"pm25"`
	PM25Percentage  float64 `json:"pm25Percentage"`
	Ozone           string  `json:"ozone"`
	OzonePercentage float64 `json:"ozonePercentage"`
}

// SafetyLevel is the local crime risk bucket.
type SafetyLevel string

const (
	SafetyLow      SafetyLevel = "Low"
	SafetyModerate SafetyLevel = "Moderate"
	SafetyHigh     SafetyLevel = "High"
)

type SafetyRecord struct {
	LevelText       string      `json:"levelText"`
	Level           SafetyLevel `json:"level"`
	Tips            string      `json:"tips"`
	RecentIncidents string      `json:"recentIncidents"`
	MostCommon      string      `json:"mostCommon"`
}

// FireStatus is derived from the active incident count.
type FireStatus string

const (
	FireNoIncidents FireStatus = "No Incidents"
	FireCaution     FireStatus = "Caution"
	FireDanger      FireStatus = "Danger"
)

type FireRecord struct {
	StatusText     string     `json:"statusText"`
	Status         FireStatus `json:"status"`
	RiskLevel      string     `json:"riskLevel"`
	RiskPercentage int        `json:"riskPercentage"`
	NearestStation string     `json:"nearestStation"`
}

type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// NewsRecord holds at most three locally relevant headlines. It is never empty.
type NewsRecord struct {
	Items []NewsItem `json:"items"`
}

type TrafficRecord struct {
	StatusText    string `json:"statusText"`
	CommuteTime   string `json:"commuteTime"`
	Incident      string `json:"incident,omitempty"`
	PublicTransit string `json:"publicTransit,omitempty"`
	BestTime      string `json:"bestTime"`
	EVCharging    string `json:"evCharging"`
}

// AlertLevel is the severity ranking Warning > Watch > Advisory > None.
type AlertLevel string

const (
	AlertNone     AlertLevel = "None"
	AlertAdvisory AlertLevel = "Advisory"
	AlertWatch    AlertLevel = "Watch"
	AlertWarning  AlertLevel = "Warning"
)

type DisasterAlert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Expires     string `json:"expires"`
	Regions     string `json:"regions"`
}

type DisasterAlertRecord struct {
	StatusText      string          `json:"statusText"`
	Status          AlertLevel      `json:"status"`
	StatusColor     string          `json:"statusColor"`
	Recommendations string          `json:"recommendations"`
	Alerts          []DisasterAlert `json:"alerts"`
	LastUpdated     string          `json:"lastUpdated"`
}

// ChatRequest is the POST /api/chat body. Coordinates are pointers so that a
// missing field can be told apart from 0.
type ChatRequest struct {
	Message   string   `json:"message" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type ChatResponse struct {
	Message string `json:"message"`
}
