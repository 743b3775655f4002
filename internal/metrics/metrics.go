// Package metrics exposes feature flag registry activity to prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flagreg"

// Recorder owns the registry's collectors. A nil *Recorder discards everything,
// so callers never need to check whether metrics are enabled.
type Recorder struct {
	registry *prometheus.Registry

	initializeTotal    prometheus.Counter
	initializeDuration prometheus.Histogram
	registeredFlags    prometheus.Gauge
	flagEnabled        *prometheus.GaugeVec
}

// NewRecorder creates a Recorder backed by its own prometheus registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		initializeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initialize_total",
			Help:      "Count of registry initializations from the persisted store.",
		}),
		initializeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "initialize_duration_seconds",
			Help:      "Time spent loading overrides and sorting the registry.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		registeredFlags: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_flags",
			Help:      "Number of debug-capable flags in the registry.",
		}),
		flagEnabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flag_enabled",
			Help:      "Current value of each registered flag (1 enabled, 0 disabled).",
		}, []string{"key", "group"}),
	}
	r.registry.MustRegister(
		r.initializeTotal,
		r.initializeDuration,
		r.registeredFlags,
		r.flagEnabled,
	)
	return r
}

// Gatherer returns the underlying prometheus registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the collected metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordInitialize records one completed initialization.
func (r *Recorder) RecordInitialize(d time.Duration) {
	if r == nil {
		return
	}
	r.initializeTotal.Inc()
	r.initializeDuration.Observe(d.Seconds())
}

// SetRegistered records the registry size.
func (r *Recorder) SetRegistered(n int) {
	if r == nil {
		return
	}
	r.registeredFlags.Set(float64(n))
}

// SetFlag records a flag's current value.
func (r *Recorder) SetFlag(key, group string, enabled bool) {
	if r == nil {
		return
	}
	v := 0.0
	if enabled {
		v = 1
	}
	r.flagEnabled.WithLabelValues(key, group).Set(v)
}
