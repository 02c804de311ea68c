package monitor

import (
	"fmt"
	"sync"
	"time"
)

// Known method names, pre-registered so a threshold lookup or dashboard
// listing never has to special-case an unseen method.
const (
	MethodSearchEndpoints      = "searchEndpoints"
	MethodGetSchema            = "getSchema"
	MethodGetExample           = "getExample"
	MethodGetEndpointCategories = "getEndpointCategories"
)

// PerformanceThresholds configures the per-method P95 latency ceilings and
// the shared max error rate that PerformanceMonitor alerts on.
type PerformanceThresholds struct {
	SearchEndpointsMaxMS       float64
	GetSchemaMaxMS             float64
	GetExampleMaxMS            float64
	GetEndpointCategoriesMaxMS float64
	ErrorRateMax               float64
}

// DefaultThresholds matches commonly used example defaults.
func DefaultThresholds() PerformanceThresholds {
	return PerformanceThresholds{
		SearchEndpointsMaxMS:       200,
		GetSchemaMaxMS:             500,
		GetExampleMaxMS:            2000,
		GetEndpointCategoriesMaxMS: 100,
		ErrorRateMax:               0.05,
	}
}

// forMethod returns the configured P95 ceiling for method, or 0 if the
// method has no configured threshold.
func (t PerformanceThresholds) forMethod(method string) float64 {
	switch method {
	case MethodSearchEndpoints:
		return t.SearchEndpointsMaxMS
	case MethodGetSchema:
		return t.GetSchemaMaxMS
	case MethodGetExample:
		return t.GetExampleMaxMS
	case MethodGetEndpointCategories:
		return t.GetEndpointCategoriesMaxMS
	default:
		return 0
	}
}

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert types.
const (
	AlertResponseTimeExceeded = "response_time_exceeded"
	AlertErrorRateExceeded    = "error_rate_exceeded"
)

// Alert records one threshold violation.
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method,omitempty"`
}

// maxAlerts bounds the retained alert ring buffer.
const maxAlerts = 200

// PerformanceMonitor owns per-method metrics, system metrics, and the alert
// ring buffer raised when either crosses its configured threshold.
//
// Grounded on original_source/swagger_mcp_server/server/monitoring.py's
// PerformanceMonitor (test_monitoring_v2.py's TestPerformanceMonitor).
type PerformanceMonitor struct {
	mu                sync.Mutex
	thresholds        PerformanceThresholds
	methodMetrics     map[string]*MethodMetrics
	systemMetrics     *SystemMetrics
	alerts            []Alert
	monitoringEnabled bool
	startupTime       time.Time
	exporter          *Exporter
}

// NewPerformanceMonitor creates a PerformanceMonitor pre-registered for the
// four MCP methods, governed by thresholds.
func NewPerformanceMonitor(thresholds PerformanceThresholds) *PerformanceMonitor {
	pm := &PerformanceMonitor{
		thresholds:        thresholds,
		methodMetrics:     make(map[string]*MethodMetrics),
		systemMetrics:     NewSystemMetrics(),
		monitoringEnabled: true,
		startupTime:       time.Now(),
	}
	for _, m := range []string{MethodSearchEndpoints, MethodGetSchema, MethodGetExample, MethodGetEndpointCategories} {
		pm.methodMetrics[m] = NewMethodMetrics(m)
	}
	return pm
}

// NewDefaultPerformanceMonitor creates a PerformanceMonitor with DefaultThresholds.
func NewDefaultPerformanceMonitor() *PerformanceMonitor {
	return NewPerformanceMonitor(DefaultThresholds())
}

// metricsFor returns the MethodMetrics for method, creating it on first use
// so ad-hoc method names (tests, future tools) are tracked too.
func (p *PerformanceMonitor) metricsFor(method string) *MethodMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	mm, ok := p.methodMetrics[method]
	if !ok {
		mm = NewMethodMetrics(method)
		p.methodMetrics[method] = mm
	}
	return mm
}

// RecordRequest records one method invocation's duration and optional error
// type, and raises any threshold alerts the new sample crosses.
func (p *PerformanceMonitor) RecordRequest(method string, duration time.Duration, errType string) {
	p.mu.Lock()
	enabled := p.monitoringEnabled
	exporter := p.exporter
	p.mu.Unlock()
	if !enabled {
		return
	}

	mm := p.metricsFor(method)
	mm.RecordRequest(duration, errType)
	exporter.record(method, duration, errType)

	p.checkThresholds(method, mm)
}

func (p *PerformanceMonitor) checkThresholds(method string, mm *MethodMetrics) {
	p.mu.Lock()
	thresholds := p.thresholds
	p.mu.Unlock()

	if maxMS := thresholds.forMethod(method); maxMS > 0 {
		if p95 := mm.P95ResponseTimeMS(); p95 > maxMS {
			p.raiseAlert(Alert{
				Type:     AlertResponseTimeExceeded,
				Message:  fmt.Sprintf("%s p95 response time %.0fms exceeds threshold %.0fms", method, p95, maxMS),
				Severity: SeverityWarning,
				Method:   method,
			})
		}
	}
	if thresholds.ErrorRateMax > 0 {
		if rate := mm.ErrorRate(); rate > thresholds.ErrorRateMax {
			p.raiseAlert(Alert{
				Type:     AlertErrorRateExceeded,
				Message:  fmt.Sprintf("%s error rate %.2f exceeds threshold %.2f", method, rate, thresholds.ErrorRateMax),
				Severity: SeverityCritical,
				Method:   method,
			})
		}
	}
}

func (p *PerformanceMonitor) raiseAlert(a Alert) {
	a.Timestamp = time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, a)
	if len(p.alerts) > maxAlerts {
		p.alerts = p.alerts[len(p.alerts)-maxAlerts:]
	}
}

// UpdateConnectionCount forwards to the underlying SystemMetrics.
func (p *PerformanceMonitor) UpdateConnectionCount(n int) {
	p.systemMetrics.UpdateConnectionCount(n)
}

// UpdateDatabasePoolUtilization forwards to the underlying SystemMetrics.
func (p *PerformanceMonitor) UpdateDatabasePoolUtilization(u float64) {
	p.systemMetrics.UpdateDatabasePoolUtilization(u)
}

// Alerts returns a copy of the currently retained alerts.
func (p *PerformanceMonitor) Alerts() []Alert {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Alert, len(p.alerts))
	copy(out, p.alerts)
	return out
}

// SetMonitoringEnabled toggles whether RecordRequest does any work.
func (p *PerformanceMonitor) SetMonitoringEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.monitoringEnabled = enabled
}

// SetExporter attaches an Exporter that mirrors every recorded request into
// Prometheus instruments. Nil disables export (the default), leaving the
// in-process Snapshot()/P95 computation, which the MCP responses read
// directly, unaffected either way.
func (p *PerformanceMonitor) SetExporter(e *Exporter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exporter = e
}

// ResetMetrics clears every method's metrics and the alert buffer.
func (p *PerformanceMonitor) ResetMetrics() {
	p.mu.Lock()
	for _, mm := range p.methodMetrics {
		mm.Reset()
	}
	p.alerts = nil
	p.mu.Unlock()
}

// PerformanceMetrics is the full metrics payload returned by
// GetPerformanceMetrics.
type PerformanceMetrics struct {
	PerformanceMetrics map[string]MetricsSnapshot `json:"performance_metrics"`
	SystemHealth       SystemMetricsSnapshot       `json:"system_health"`
	Alerts             []Alert                     `json:"alerts"`
	MonitoringEnabled  bool                        `json:"monitoring_enabled"`
	Thresholds         PerformanceThresholds       `json:"thresholds"`
}

// GetPerformanceMetrics snapshots every tracked method plus system health.
func (p *PerformanceMonitor) GetPerformanceMetrics() PerformanceMetrics {
	p.mu.Lock()
	methods := make([]*MethodMetrics, 0, len(p.methodMetrics))
	names := make([]string, 0, len(p.methodMetrics))
	for name, mm := range p.methodMetrics {
		names = append(names, name)
		methods = append(methods, mm)
	}
	thresholds := p.thresholds
	enabled := p.monitoringEnabled
	p.mu.Unlock()

	snapshots := make(map[string]MetricsSnapshot, len(methods))
	for i, name := range names {
		snapshots[name] = methods[i].Snapshot()
	}

	return PerformanceMetrics{
		PerformanceMetrics: snapshots,
		SystemHealth:       p.systemMetrics.Snapshot(),
		Alerts:             p.Alerts(),
		MonitoringEnabled:  enabled,
		Thresholds:         thresholds,
	}
}

// HealthSummary is the compact, always-cheap health view GetHealthSummary
// returns.
type HealthSummary struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	RecentAlerts  int     `json:"recent_alerts"`
	CriticalAlerts int    `json:"critical_alerts"`
}

// GetHealthSummary aggregates total traffic and alert counts into one of
// healthy/degraded/unhealthy without running the full composite HealthChecker.
func (p *PerformanceMonitor) GetHealthSummary() HealthSummary {
	p.mu.Lock()
	methods := make([]*MethodMetrics, 0, len(p.methodMetrics))
	for _, mm := range p.methodMetrics {
		methods = append(methods, mm)
	}
	startup := p.startupTime
	p.mu.Unlock()

	var totalRequests, totalErrors int64
	for _, mm := range methods {
		snap := mm.Snapshot()
		totalRequests += snap.TotalRequests
		totalErrors += snap.TotalErrors
	}

	alerts := p.Alerts()
	critical := 0
	for _, a := range alerts {
		if a.Severity == SeverityCritical {
			critical++
		}
	}

	status := HealthStatusHealthy
	switch {
	case critical > 0:
		status = HealthStatusUnhealthy
	case len(alerts) > 0:
		status = HealthStatusDegraded
	}

	return HealthSummary{
		Status:         string(status),
		UptimeSeconds:  time.Since(startup).Seconds(),
		TotalRequests:  totalRequests,
		TotalErrors:    totalErrors,
		RecentAlerts:   len(alerts),
		CriticalAlerts: critical,
	}
}
