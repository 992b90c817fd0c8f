package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Histogram of outbound provider round-trip times.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "outcome"},
	)
	degraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_degraded_total",
			Help: "Degraded records served instead of provider data.",
		},
		[]string{"domain"},
	)

	registerOnce sync.Once
)

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(providerLatency)
		prometheus.MustRegister(degraded)
	})
}

func ObserveProvider(provider, outcome string, d time.Duration) {
	providerLatency.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

func IncDegraded(domain string) {
	degraded.WithLabelValues(domain).Inc()
}
