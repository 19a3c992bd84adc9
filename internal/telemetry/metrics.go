package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. Metrics live in
// their own registry so multiple instances never collide.
type Metrics struct {
	Registry *prometheus.Registry

	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	FallbacksTotal      prometheus.Counter
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastrac_calculations_total",
				Help: "Total shipping calculations by outcome (quotes, fallback, error)",
			},
			[]string{"outcome"},
		),
		CalculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fastrac_calculation_duration_seconds",
				Help:    "Shipping calculation duration in seconds by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastrac_region_cache_lookups_total",
				Help: "Session region-cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),
		FallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fastrac_fallback_rates_total",
				Help: "Calculations that degraded to the fixed fallback rate",
			},
		),
	}
}

// RecordCalculation records one completed calculation.
func (m *Metrics) RecordCalculation(outcome string, duration float64) {
	m.CalculationsTotal.WithLabelValues(outcome).Inc()
	m.CalculationDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordCacheLookup records a region-cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
