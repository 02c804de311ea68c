package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter forwards PerformanceMonitor's per-request samples into Prometheus
// client_golang instruments, so the same per-method counts Snapshot() serves
// over MCP are also scrapeable by an external monitoring stack.
//
// Grounded on rivaas-dev-rivaas/metrics/metrics.go, the pack's own
// OpenTelemetry/Prometheus metrics recorder. This wires the underlying
// client_golang library directly rather than that package's RecordMetric/
// IncrementCounter convenience methods, which are declared on a `*Config`
// type never defined anywhere in that package (so they don't compile as
// copied) — see DESIGN.md.
type Exporter struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// NewExporter builds an Exporter around its own registry, so multiple
// PerformanceMonitor instances (tests, in particular) never collide by
// registering the same metric names against Prometheus' default global
// registry.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	e := &Exporter{
		registry: reg,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "oaskb",
			Name:      "method_duration_seconds",
			Help:      "MCP method call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oaskb",
			Name:      "method_errors_total",
			Help:      "MCP method calls that returned an error, labeled by error type.",
		}, []string{"method", "error_type"}),
	}
	reg.MustRegister(e.requestDuration, e.requestErrors)
	return e
}

// record forwards one request sample. errType empty means the request
// succeeded, matching MethodMetrics.RecordRequest's convention.
func (e *Exporter) record(method string, duration time.Duration, errType string) {
	if e == nil {
		return
	}
	e.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if errType != "" {
		e.requestErrors.WithLabelValues(method, errType).Inc()
	}
}

// Handler returns the Prometheus scrape endpoint for this Exporter's
// registry, suitable for mounting at /metrics.
func (e *Exporter) Handler() http.Handler {
	if e == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
