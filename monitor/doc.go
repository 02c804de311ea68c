// Package monitor tracks per-method latency/error metrics, system resource
// usage, and composite health for the MCP method runtime, and supplies the
// CircuitBreaker and Pool types mcpsrv's middleware chain wraps every tool
// call with.
//
// Grounded on original_source/swagger_mcp_server/server/monitoring.py and
// server/health.py (see test_monitoring_v2.py for the exercised shapes:
// MethodMetrics.record_request/p95_response_time/get_metrics_dict,
// PerformanceMonitor.record_request/get_health_summary, HealthChecker's
// three component checks and get_overall_health/get_basic_health), adapted
// from an async/mutex-free single-process design into one using
// sync.Mutex-guarded ring buffers and sync/atomic counters for its
// CircuitBreaker and Pool types.
package monitor
