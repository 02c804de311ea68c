package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/erraggy/oaskb/store"
)

// HealthStatus is the three-way composite health classification.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth is the result of one health sub-check.
type ComponentHealth struct {
	Status       HealthStatus   `json:"status"`
	Message      string         `json:"message"`
	Details      map[string]any `json:"details,omitempty"`
	CheckDuration time.Duration `json:"-"`
}

// Pinger performs a synthetic round trip through the MCP serving path, used
// by CheckMCPResponsiveness without HealthChecker importing mcpsrv (which
// itself imports monitor).
type Pinger interface {
	Ping(ctx context.Context) error
}

// mcpResponsivenessDegradedMS is the round-trip time above which a
// successful synthetic call is still reported as degraded.
const mcpResponsivenessDegradedMS = 250

// HealthChecker composes the database, MCP-responsiveness, and performance
// sub-checks into one overall health verdict.
//
// Grounded on original_source/swagger_mcp_server/server/health.py (see
// test_monitoring_v2.py's TestHealthChecker/test_get_overall_health).
type HealthChecker struct {
	monitor *PerformanceMonitor
	version string
}

// NewHealthChecker creates a HealthChecker backed by monitor's performance
// data. version is reported verbatim in health payloads.
func NewHealthChecker(monitor *PerformanceMonitor, version string) *HealthChecker {
	return &HealthChecker{monitor: monitor, version: version}
}

// CheckDatabaseHealth pings db and runs its integrity check.
func (h *HealthChecker) CheckDatabaseHealth(ctx context.Context, db *store.DB) ComponentHealth {
	start := time.Now()
	if db == nil {
		return ComponentHealth{
			Status:        HealthStatusUnhealthy,
			Message:       "database not initialized",
			CheckDuration: time.Since(start),
		}
	}
	if err := db.SQL().PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:        HealthStatusUnhealthy,
			Message:       fmt.Sprintf("database ping failed: %v", err),
			CheckDuration: time.Since(start),
		}
	}
	if err := store.CheckIntegrity(ctx, db); err != nil {
		return ComponentHealth{
			Status:        HealthStatusDegraded,
			Message:       fmt.Sprintf("database integrity check failed: %v", err),
			CheckDuration: time.Since(start),
		}
	}
	stats := db.SQL().Stats()
	return ComponentHealth{
		Status:  HealthStatusHealthy,
		Message: "database connection healthy",
		Details: map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
		},
		CheckDuration: time.Since(start),
	}
}

// CheckMCPResponsiveness runs a synthetic call through pinger and classifies
// the result by success and round-trip latency.
func (h *HealthChecker) CheckMCPResponsiveness(ctx context.Context, pinger Pinger) ComponentHealth {
	start := time.Now()
	if pinger == nil {
		return ComponentHealth{
			Status:        HealthStatusUnhealthy,
			Message:       "MCP server not properly initialized",
			CheckDuration: time.Since(start),
		}
	}
	if err := pinger.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:        HealthStatusUnhealthy,
			Message:       fmt.Sprintf("MCP responsiveness check failed: %v", err),
			CheckDuration: time.Since(start),
		}
	}
	elapsed := time.Since(start)
	status := HealthStatusHealthy
	if elapsed.Milliseconds() > mcpResponsivenessDegradedMS {
		status = HealthStatusDegraded
	}
	return ComponentHealth{
		Status:  status,
		Message: "MCP server responsive",
		Details: map[string]any{"response_time_ms": elapsed.Milliseconds()},
		CheckDuration: elapsed,
	}
}

// CheckPerformanceHealth evaluates every method's current P95 against its
// configured threshold: any violation is unhealthy, any method within 10%
// of its threshold is degraded, otherwise healthy.
func (h *HealthChecker) CheckPerformanceHealth() ComponentHealth {
	start := time.Now()
	metrics := h.monitor.GetPerformanceMetrics()

	violated := false
	near := false
	for method, snap := range metrics.PerformanceMetrics {
		maxMS := metrics.Thresholds.forMethod(method)
		if maxMS <= 0 || snap.TotalRequests == 0 {
			continue
		}
		if snap.P95ResponseTimeMS > maxMS {
			violated = true
		} else if snap.P95ResponseTimeMS > maxMS*0.9 {
			near = true
		}
	}

	switch {
	case violated:
		return ComponentHealth{Status: HealthStatusUnhealthy, Message: "performance threshold violated", CheckDuration: time.Since(start)}
	case near:
		return ComponentHealth{Status: HealthStatusDegraded, Message: "performance nearing threshold", CheckDuration: time.Since(start)}
	default:
		return ComponentHealth{Status: HealthStatusHealthy, Message: "performance within thresholds", CheckDuration: time.Since(start)}
	}
}

// OverallHealth is the full composite health payload.
type OverallHealth struct {
	Status             HealthStatus               `json:"status"`
	Message            string                      `json:"message"`
	Timestamp          time.Time                   `json:"timestamp"`
	UptimeSeconds      float64                     `json:"uptime_seconds"`
	CheckDurationMS    int64                       `json:"check_duration_ms"`
	Components         map[string]ComponentHealth  `json:"components"`
	PerformanceSummary HealthSummary               `json:"performance_summary"`
	Version            string                      `json:"version"`
}

// GetOverallHealth composes the database, MCP, and performance checks into
// one aggregate verdict: unhealthy if any component is unhealthy, degraded
// if any is degraded, healthy otherwise.
func (h *HealthChecker) GetOverallHealth(ctx context.Context, db *store.DB, pinger Pinger) OverallHealth {
	start := time.Now()

	components := map[string]ComponentHealth{
		"database":    h.CheckDatabaseHealth(ctx, db),
		"mcp_server":  h.CheckMCPResponsiveness(ctx, pinger),
		"performance": h.CheckPerformanceHealth(),
	}

	status := HealthStatusHealthy
	for _, c := range components {
		switch c.Status {
		case HealthStatusUnhealthy:
			status = HealthStatusUnhealthy
		case HealthStatusDegraded:
			if status != HealthStatusUnhealthy {
				status = HealthStatusDegraded
			}
		}
	}

	message := "all components healthy"
	if status != HealthStatusHealthy {
		message = fmt.Sprintf("one or more components %s", status)
	}

	return OverallHealth{
		Status:             status,
		Message:            message,
		Timestamp:          time.Now(),
		UptimeSeconds:      time.Since(h.monitor.startupTime).Seconds(),
		CheckDurationMS:    time.Since(start).Milliseconds(),
		Components:         components,
		PerformanceSummary: h.monitor.GetHealthSummary(),
		Version:            h.version,
	}
}

// BasicHealth is the liveness-only payload: no database or MCP round trip.
type BasicHealth struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Version       string    `json:"version"`
}

// GetBasicHealth returns immediately, for a liveness probe that must never
// block on the database or downstream dependencies.
func (h *HealthChecker) GetBasicHealth() BasicHealth {
	return BasicHealth{
		Status:        string(HealthStatusHealthy),
		Timestamp:     time.Now(),
		UptimeSeconds: time.Since(h.monitor.startupTime).Seconds(),
		Version:       h.version,
	}
}
