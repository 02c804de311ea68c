package mcpsrv

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the MCP method runtime reads at startup.
// Loaded once via LoadConfig() from OASKB_* environment variables, mirroring
// oastools' internal/mcpserver/config.go idiom but threaded as an explicit
// field on ServerContext instead of a package-level var.
type Config struct {
	// Per-method pool sizes (concurrent in-flight calls).
	PoolSize              int
	PoolAcquireTimeout    time.Duration
	HandlerTimeout        time.Duration
	RetryMaxAttempts      int
	RetryBaseDelay        time.Duration

	// Circuit breaker defaults, applied to every method's breaker.
	CircuitFailureThreshold int32
	CircuitSuccessThreshold int32
	CircuitRecoveryTimeout  time.Duration

	MonitoringEnabled bool
	ServerVersion     string

	// MetricsAddr, when non-empty, is the address cmd/oaskb serves the
	// Prometheus scrape endpoint on (e.g. ":9090"). Empty disables the
	// listener; the Exporter still collects in-process either way.
	MetricsAddr string
}

// LoadConfig reads configuration from OASKB_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func LoadConfig() *Config {
	return &Config{
		PoolSize:                envInt("OASKB_POOL_SIZE", 10),
		PoolAcquireTimeout:      envDuration("OASKB_POOL_ACQUIRE_TIMEOUT", 5*time.Second),
		HandlerTimeout:          envDuration("OASKB_HANDLER_TIMEOUT", 10*time.Second),
		RetryMaxAttempts:        envInt("OASKB_RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelay:          envDuration("OASKB_RETRY_BASE_DELAY", 50*time.Millisecond),
		CircuitFailureThreshold: int32(envInt("OASKB_CIRCUIT_FAILURE_THRESHOLD", 5)),
		CircuitSuccessThreshold: int32(envInt("OASKB_CIRCUIT_SUCCESS_THRESHOLD", 2)),
		CircuitRecoveryTimeout:  envDuration("OASKB_CIRCUIT_RECOVERY_TIMEOUT", 30*time.Second),
		MonitoringEnabled:       envBool("OASKB_MONITORING_ENABLED", true),
		ServerVersion:           envString("OASKB_SERVER_VERSION", "0.1.0"),
		MetricsAddr:             envString("OASKB_METRICS_ADDR", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
