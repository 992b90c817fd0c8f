package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nitesh/risk_dashboard/internal/metrics"
	"github.com/nitesh/risk_dashboard/internal/providers"
)

// Domain names one dashboard panel. The string form is what
// FAIL_CLOSED_DOMAINS accepts.
type Domain string

const (
	DomainWeather     Domain = "weather"
	DomainEnvironment Domain = "environment"
	DomainSafety      Domain = "safety"
	DomainFire        Domain = "fire"
	DomainNews        Domain = "news"
	DomainTraffic     Domain = "traffic"
	DomainDisasters   Domain = "disasters"
)

// Domains lists every domain in prompt order.
var Domains = []Domain{
	DomainWeather, DomainEnvironment, DomainSafety, DomainFire,
	DomainTraffic, DomainDisasters, DomainNews,
}

// Label is the human form used in error messages.
func (d Domain) Label() string {
	if d == DomainDisasters {
		return "disaster alert"
	}
	return string(d)
}

// DomainError is a provider failure in a fail-closed domain.
type DomainError struct {
	Domain Domain
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v", e.Domain, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// Message is the client-facing text for the error.
func (e *DomainError) Message() string {
	return fmt.Sprintf("Failed to retrieve %s data", e.Domain.Label())
}

// ParseDomains validates FAIL_CLOSED_DOMAINS entries.
func ParseDomains(names []string) ([]Domain, error) {
	out := make([]Domain, 0, len(names))
	for _, n := range names {
		d := Domain(strings.ToLower(strings.TrimSpace(n)))
		if d == "disaster-alerts" {
			d = DomainDisasters
		}
		known := false
		for _, k := range Domains {
			if d == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown domain %q", n)
		}
		out = append(out, d)
	}
	return out, nil
}

type WeatherSource interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*providers.CurrentWeather, error)
}

type AlertSource interface {
	AlertReport(ctx context.Context, lat, lon float64) (*providers.AlertReport, error)
}

type AirSource interface {
	AirPollution(ctx context.Context, lat, lon float64) (*providers.AirSample, error)
}

type CrimeSource interface {
	Incidents(ctx context.Context, lat, lon float64, ori string) (*providers.CrimeReport, error)
}

type FireSource interface {
	Activity(ctx context.Context, lat, lon float64) (*providers.FireReport, error)
}

type Geocoder interface {
	PlaceName(ctx context.Context, lat, lon float64) (string, error)
}

type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]providers.Article, error)
}

type TrafficSource interface {
	Flow(ctx context.Context, lat, lon float64) (*providers.TrafficFlow, error)
	NearestCharger(ctx context.Context, lat, lon float64) (*providers.ChargingStation, error)
}

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Sources wires one implementation per concern.
type Sources struct {
	Weather  WeatherSource
	Alerts   AlertSource
	Air      AirSource
	Crime    CrimeSource
	Fire     FireSource
	Geocoder Geocoder
	News     NewsSearcher
	Traffic  TrafficSource
	LLM      Completer
}

type Service struct {
	src        Sources
	failClosed map[Domain]bool
	now        func() time.Time
	log        *slog.Logger
}

type Option func(*Service)

// WithFailClosed replaces the default fail-closed set (weather and fire).
func WithFailClosed(domains ...Domain) Option {
	return func(s *Service) {
		s.failClosed = make(map[Domain]bool, len(domains))
		for _, d := range domains {
			s.failClosed[d] = true
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(src Sources, opts ...Option) *Service {
	s := &Service{
		src:        src,
		failClosed: map[Domain]bool{DomainWeather: true, DomainFire: true},
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FailClosed reports whether provider errors in d reach the caller.
func (s *Service) FailClosed(d Domain) bool { return s.failClosed[d] }

// resolve applies the failure policy: a fail-closed domain surfaces err as a
// *DomainError, any other domain gets its degraded record.
func resolve[T any](s *Service, d Domain, rec *T, err error, degraded func() *T) (*T, error) {
	if err == nil {
		return rec, nil
	}
	if s.failClosed[d] {
		return nil, &DomainError{Domain: d, Err: err}
	}
	s.log.Warn("serving degraded record", "domain", string(d), "err", err)
	metrics.IncDegraded(string(d))
	return degraded(), nil
}

// available reports false only for sources that say they lack credentials.
func available(src any) bool {
	if a, ok := src.(interface{ IsAvailable() bool }); ok {
		return a.IsAvailable()
	}
	return true
}
