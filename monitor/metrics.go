package monitor

import (
	"sort"
	"sync"
	"time"
)

// maxResponseTimeSamples bounds the response-time ring buffer kept per
// method for the P95 window, trading exact percentile accuracy over the
// method's lifetime for bounded memory.
const maxResponseTimeSamples = 1000

// MethodMetrics accumulates request counts, response-time samples, and an
// error-type histogram for one MCP method.
//
// Grounded on original_source/swagger_mcp_server/server/monitoring.py's
// MethodMetrics (see test_monitoring_v2.py's TestMethodMetrics for the
// exercised shape: record_request/avg_response_time/p95_response_time/
// error_rate/get_metrics_dict).
type MethodMetrics struct {
	mu sync.Mutex

	name              string
	totalRequests     int64
	totalErrors       int64
	totalResponseTime time.Duration
	responseTimes     []time.Duration
	errorTypes        map[string]int
	firstRequestAt    time.Time
}

// NewMethodMetrics creates an empty MethodMetrics for the given method name.
func NewMethodMetrics(name string) *MethodMetrics {
	return &MethodMetrics{name: name, errorTypes: make(map[string]int)}
}

// RecordRequest records one completed request. errType is empty for a
// successful request, or the error's classification otherwise.
func (m *MethodMetrics) RecordRequest(duration time.Duration, errType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.totalRequests == 0 {
		m.firstRequestAt = time.Now()
	}
	m.totalRequests++
	m.totalResponseTime += duration
	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxResponseTimeSamples {
		m.responseTimes = m.responseTimes[len(m.responseTimes)-maxResponseTimeSamples:]
	}
	if errType != "" {
		m.totalErrors++
		m.errorTypes[errType]++
	}
}

// AvgResponseTimeMS returns the mean response time in milliseconds.
func (m *MethodMetrics) AvgResponseTimeMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totalRequests == 0 {
		return 0
	}
	return float64(m.totalResponseTime.Milliseconds()) / float64(m.totalRequests)
}

// P95ResponseTimeMS returns the 95th percentile of the retained response-time
// samples, in milliseconds.
func (m *MethodMetrics) P95ResponseTimeMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responseTimes) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(m.responseTimes))
	copy(sorted, m.responseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted))*0.95)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx].Milliseconds())
}

// ErrorRate returns the fraction of requests that recorded a non-empty
// error type, in [0, 1].
func (m *MethodMetrics) ErrorRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totalRequests == 0 {
		return 0
	}
	return float64(m.totalErrors) / float64(m.totalRequests)
}

// RequestsPerMinute estimates throughput as total requests over elapsed
// minutes since the first request, floored at one minute so an early burst
// does not read as an implausibly high rate.
func (m *MethodMetrics) RequestsPerMinute() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totalRequests == 0 {
		return 0
	}
	elapsed := time.Since(m.firstRequestAt).Minutes()
	if elapsed < 1 {
		elapsed = 1
	}
	return float64(m.totalRequests) / elapsed
}

// Reset clears all recorded state.
func (m *MethodMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests = 0
	m.totalErrors = 0
	m.totalResponseTime = 0
	m.responseTimes = nil
	m.errorTypes = make(map[string]int)
	m.firstRequestAt = time.Time{}
}

// MetricsSnapshot is MethodMetrics' derived-field view, serializable for the
// getHealthStatus/getPerformanceMetrics MCP responses.
type MetricsSnapshot struct {
	AvgResponseTimeMS  float64        `json:"avg_response_time"`
	P95ResponseTimeMS  float64        `json:"p95_response_time"`
	RequestsPerMinute  float64        `json:"requests_per_minute"`
	ErrorRate          float64        `json:"error_rate"`
	TotalRequests      int64          `json:"total_requests"`
	TotalErrors        int64          `json:"total_errors"`
	ErrorTypes         map[string]int `json:"error_types"`
}

// Snapshot returns the current derived metrics.
func (m *MethodMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	errTypes := make(map[string]int, len(m.errorTypes))
	for k, v := range m.errorTypes {
		errTypes[k] = v
	}
	totalRequests, totalErrors := m.totalRequests, m.totalErrors
	m.mu.Unlock()

	return MetricsSnapshot{
		AvgResponseTimeMS: m.AvgResponseTimeMS(),
		P95ResponseTimeMS: m.P95ResponseTimeMS(),
		RequestsPerMinute: m.RequestsPerMinute(),
		ErrorRate:         m.ErrorRate(),
		TotalRequests:     totalRequests,
		TotalErrors:       totalErrors,
		ErrorTypes:        errTypes,
	}
}
