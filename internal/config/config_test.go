package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WEATHER_SOURCE", "SAFETY_SOURCE", "FIRE_SOURCE", "NEWS_SOURCE",
		"FAIL_CLOSED_DOMAINS", "PROVIDER_TIMEOUT", "LOG_LEVEL", "PORT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WeatherSource != WeatherPirate || cfg.SafetySource != SourceSimulated ||
		cfg.FireSource != SourceSimulated || cfg.NewsSource != NewsAPI {
		t.Errorf("unexpected source defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.FailClosedDomains, []string{"weather", "fire"}) {
		t.Errorf("FailClosedDomains = %v", cfg.FailClosedDomains)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("ProviderTimeout = %v", cfg.ProviderTimeout)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WEATHER_SOURCE", "NWS")
	t.Setenv("NEWS_SOURCE", "rss")
	t.Setenv("FAIL_CLOSED_DOMAINS", " Fire , traffic,")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("PROVIDER_QUOTA_PER_MINUTE", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WeatherSource != WeatherNWS || cfg.NewsSource != NewsRSS {
		t.Errorf("sources = %q/%q", cfg.WeatherSource, cfg.NewsSource)
	}
	if !reflect.DeepEqual(cfg.FailClosedDomains, []string{"fire", "traffic"}) {
		t.Errorf("FailClosedDomains = %v", cfg.FailClosedDomains)
	}
	if cfg.ProviderTimeout != 3*time.Second || cfg.ProviderQuotaPerMinute != 60 {
		t.Errorf("timeout/quota = %v/%d", cfg.ProviderTimeout, cfg.ProviderQuotaPerMinute)
	}
}

func TestLoadNoneDisablesFailClosed(t *testing.T) {
	t.Setenv("FAIL_CLOSED_DOMAINS", "none")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.FailClosedDomains) != 0 {
		t.Errorf("expected no fail-closed domains, got %v", cfg.FailClosedDomains)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("SAFETY_SOURCE", "psychic")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown SAFETY_SOURCE")
	}
}

func TestBadNumbersFallBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("PROVIDER_QUOTA_PER_MINUTE", "lots")
	if got := getEnvAsDuration("PROVIDER_TIMEOUT", time.Second); got != time.Second {
		t.Errorf("duration = %v", got)
	}
	if got := getEnvAsInt("PROVIDER_QUOTA_PER_MINUTE", 7); got != 7 {
		t.Errorf("int = %d", got)
	}
}
