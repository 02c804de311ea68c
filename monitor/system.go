package monitor

import (
	"database/sql"
	"runtime"
	"sync"
	"time"
)

// SystemMetrics tracks process-level resource usage: memory, goroutine count
// (a connection-count proxy absent a request-scoped counter), and database
// pool utilization.
//
// Grounded on original_source/swagger_mcp_server/server/monitoring.py's
// SystemMetrics (test_monitoring_v2.py's TestSystemMetrics), adapted from
// Python's psutil-based memory/CPU sampling to runtime.MemStats — Go's
// standard library has no portable CPU-percent sample without importing a
// dependency none of the example repos carry, so cpu_utilization is
// dropped rather than faked; see DESIGN.md.
type SystemMetrics struct {
	mu                      sync.Mutex
	concurrentConnections   int
	databasePoolUtilization float64
	startupTime             time.Time
}

// NewSystemMetrics creates a SystemMetrics with its startup clock running.
func NewSystemMetrics() *SystemMetrics {
	return &SystemMetrics{startupTime: time.Now()}
}

// UpdateConnectionCount records the caller's view of concurrent connections.
func (s *SystemMetrics) UpdateConnectionCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concurrentConnections = n
}

// UpdateDatabasePoolUtilization records a 0-1 pool-utilization fraction.
func (s *SystemMetrics) UpdateDatabasePoolUtilization(u float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.databasePoolUtilization = u
}

// UpdateFromDBStats derives pool utilization from sql.DBStats when the pool
// reports a configured maximum.
func (s *SystemMetrics) UpdateFromDBStats(stats sql.DBStats) {
	if stats.MaxOpenConnections <= 0 {
		return
	}
	s.UpdateDatabasePoolUtilization(float64(stats.InUse) / float64(stats.MaxOpenConnections))
}

// SystemMetricsSnapshot is SystemMetrics' serializable view.
type SystemMetricsSnapshot struct {
	ConcurrentConnections   int     `json:"concurrent_connections"`
	DatabasePoolUtilization float64 `json:"database_pool_utilization"`
	MemoryUsageMB           float64 `json:"memory_usage_mb"`
	GoroutineCount          int     `json:"goroutine_count"`
	UptimeSeconds           float64 `json:"uptime_seconds"`
}

// Snapshot returns the current system metrics.
func (s *SystemMetrics) Snapshot() SystemMetricsSnapshot {
	s.mu.Lock()
	conns, util, startup := s.concurrentConnections, s.databasePoolUtilization, s.startupTime
	s.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return SystemMetricsSnapshot{
		ConcurrentConnections:   conns,
		DatabasePoolUtilization: util,
		MemoryUsageMB:           float64(ms.Alloc) / (1024 * 1024),
		GoroutineCount:          runtime.NumGoroutine(),
		UptimeSeconds:           time.Since(startup).Seconds(),
	}
}
