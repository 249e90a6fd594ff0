package module

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Invocation outcome labels.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// MetricsCollector wraps the Prometheus metrics recorded for block
// invocations. It owns its registry so tests and multiple hosts never
// collide on the global one.
type MetricsCollector struct {
	registry *prometheus.Registry

	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	RegisteredBlocks   prometheus.Gauge
}

// NewMetricsCollector creates a collector with the given metric namespace.
func NewMetricsCollector(namespace string) *MetricsCollector {
	reg := prometheus.NewRegistry()
	mc := &MetricsCollector{
		registry: reg,
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blocks",
			Name:      "invocations_total",
			Help:      "Total number of block invocations by outcome",
		}, []string{"block", "status"}),
		InvocationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "blocks",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of block invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"block"}),
		RegisteredBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "blocks",
			Name:      "registered",
			Help:      "Number of blocks in the catalog",
		}),
	}
	reg.MustRegister(mc.Invocations, mc.InvocationDuration, mc.RegisteredBlocks)
	return mc
}

// RecordInvocation records the outcome and duration of one invocation.
func (m *MetricsCollector) RecordInvocation(blockType, status string, d time.Duration) {
	m.Invocations.WithLabelValues(blockType, status).Inc()
	m.InvocationDuration.WithLabelValues(blockType).Observe(d.Seconds())
}

// Registry returns the underlying Prometheus registry.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the collector's metrics.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
