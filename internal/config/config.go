package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	WeatherPirate = "pirate"
	WeatherNWS    = "nws"

	SourceSimulated = "simulated"
	SourceLive      = "live"

	NewsAPI = "newsapi"
	NewsRSS = "rss"
)

type Config struct {
	Port string

	PirateWeatherAPIKey string
	OpenWeatherAPIKey   string
	CrimeAPIKey         string
	FireAPIKey          string
	NewsAPIKey          string
	TomTomAPIKey        string
	OpenAIAPIKey        string

	LLMURL   string
	LLMModel string

	NominatimUserAgent string
	NWSUserAgent       string
	ProviderTimeout    time.Duration

	WeatherSource string
	SafetySource  string
	FireSource    string
	NewsSource    string

	// FailClosedDomains lists the domains whose provider errors reach the
	// client as 500s. Every other domain serves its degraded record.
	FailClosedDomains []string

	RedisAddr              string
	ProviderQuotaPerMinute int

	LogLevel string
}

// Load reads .env when present, then the process environment. Missing API
// keys are not an error; each affected domain degrades on its own.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                   getEnv("PORT", "5000"),
		PirateWeatherAPIKey:    getEnv("PIRATEWEATHER_API_KEY", ""),
		OpenWeatherAPIKey:      getEnv("OPENWEATHER_API_KEY", ""),
		CrimeAPIKey:            getEnv("CRIME_API_KEY", ""),
		FireAPIKey:             getEnv("FIRE_API_KEY", ""),
		NewsAPIKey:             getEnv("NEWS_API_KEY", ""),
		TomTomAPIKey:           getEnv("TOMTOM_API_KEY", ""),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		LLMURL:                 getEnv("LLM_URL", "https://api.openai.com/v1/chat/completions"),
		LLMModel:               getEnv("LLM_MODEL", "gpt-4o"),
		NominatimUserAgent:     getEnv("NOMINATIM_USER_AGENT", "CommunityRiskMonitor/1.0"),
		NWSUserAgent:           getEnv("NWS_USER_AGENT", "CommunityRiskMonitor/1.0"),
		ProviderTimeout:        getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
		WeatherSource:          strings.ToLower(getEnv("WEATHER_SOURCE", WeatherPirate)),
		SafetySource:           strings.ToLower(getEnv("SAFETY_SOURCE", SourceSimulated)),
		FireSource:             strings.ToLower(getEnv("FIRE_SOURCE", SourceSimulated)),
		NewsSource:             strings.ToLower(getEnv("NEWS_SOURCE", NewsAPI)),
		FailClosedDomains:      getEnvAsList("FAIL_CLOSED_DOMAINS", []string{"weather", "fire"}),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		ProviderQuotaPerMinute: getEnvAsInt("PROVIDER_QUOTA_PER_MINUTE", 0),
		LogLevel:               strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if err := oneOf("WEATHER_SOURCE", cfg.WeatherSource, WeatherPirate, WeatherNWS); err != nil {
		return nil, err
	}
	if err := oneOf("SAFETY_SOURCE", cfg.SafetySource, SourceSimulated, SourceLive); err != nil {
		return nil, err
	}
	if err := oneOf("FIRE_SOURCE", cfg.FireSource, SourceSimulated, SourceLive); err != nil {
		return nil, err
	}
	if err := oneOf("NEWS_SOURCE", cfg.NewsSource, NewsAPI, NewsRSS); err != nil {
		return nil, err
	}
	if err := oneOf("LOG_LEVEL", cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("config: %s=%q, must be one of %s", key, value, strings.Join(allowed, ", "))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated value. A variable set to "none"
// yields an empty list.
func getEnvAsList(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	if strings.EqualFold(value, "none") {
		return []string{}
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
