// Package prom exposes reload and evaluation metrics through
// prometheus/client_golang. Metrics implements ports.Diagnostics so it can be
// fanned out alongside the log sink.
package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/corey/saw/internal/ports"
)

// Metrics contains the saw engine metrics.
type Metrics struct {
	Reloads        prometheus.Counter
	Documents      *prometheus.CounterVec
	Recipes        prometheus.Gauge
	NoopEmitters   prometheus.Gauge
	ReloadDuration prometheus.Histogram
	Evaluations    *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the metrics and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saw",
			Subsystem: "reload",
			Name:      "total",
			Help:      "Total number of completed recipe reloads",
		}),
		Documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saw",
				Subsystem: "reload",
				Name:      "documents_total",
				Help:      "Recipe documents processed, by outcome",
			},
			[]string{"outcome"},
		),
		Recipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "saw",
			Name:      "recipes",
			Help:      "Recipes in the published registry",
		}),
		NoopEmitters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "saw",
			Name:      "noop_emitters",
			Help:      "Output entries in the published registry that decoded to no-ops",
		}),
		ReloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "saw",
			Subsystem: "reload",
			Name:      "duration_seconds",
			Help:      "Reload duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "saw",
				Name:      "evaluations_total",
				Help:      "Subject evaluations, by whether a recipe matched",
			},
			[]string{"matched"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Reloads, m.Documents, m.Recipes, m.NoopEmitters, m.ReloadDuration, m.Evaluations)
	return m
}

// RecipeRejected counts a rejected document.
func (m *Metrics) RecipeRejected(string, error) {
	m.Documents.WithLabelValues("rejected").Inc()
}

// ReloadCompleted records a reload summary.
func (m *Metrics) ReloadCompleted(r ports.ReloadReport) {
	m.Reloads.Inc()
	m.Documents.WithLabelValues("accepted").Add(float64(r.Accepted))
	m.Recipes.Set(float64(r.Accepted))
	m.NoopEmitters.Set(float64(r.Noops))
	m.ReloadDuration.Observe(r.Duration.Seconds())
}

// Evaluated counts one evaluation.
func (m *Metrics) Evaluated(matched bool) {
	label := "false"
	if matched {
		label = "true"
	}
	m.Evaluations.WithLabelValues(label).Inc()
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
