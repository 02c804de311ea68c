package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaskb/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := store.DefaultConfig(path)
	d, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = store.MigrateToLatest(context.Background(), d, false)
	require.NoError(t, err)
	return d
}

type fakePinger struct {
	err   error
	delay time.Duration
}

func (f fakePinger) Ping(ctx context.Context) error {
	time.Sleep(f.delay)
	return f.err
}

func TestCheckDatabaseHealthSuccess(t *testing.T) {
	db := openTestDB(t)
	checker := NewHealthChecker(NewDefaultPerformanceMonitor(), "test")

	health := checker.CheckDatabaseHealth(context.Background(), db)
	assert.Equal(t, HealthStatusHealthy, health.Status)
	assert.Contains(t, health.Message, "healthy")
}

func TestCheckDatabaseHealthNilDB(t *testing.T) {
	checker := NewHealthChecker(NewDefaultPerformanceMonitor(), "test")
	health := checker.CheckDatabaseHealth(context.Background(), nil)
	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Contains(t, health.Message, "not initialized")
}

func TestCheckMCPResponsivenessSuccessAndFailure(t *testing.T) {
	checker := NewHealthChecker(NewDefaultPerformanceMonitor(), "test")

	healthy := checker.CheckMCPResponsiveness(context.Background(), fakePinger{})
	assert.Equal(t, HealthStatusHealthy, healthy.Status)

	unhealthy := checker.CheckMCPResponsiveness(context.Background(), fakePinger{err: errors.New("boom")})
	assert.Equal(t, HealthStatusUnhealthy, unhealthy.Status)

	nilPinger := checker.CheckMCPResponsiveness(context.Background(), nil)
	assert.Equal(t, HealthStatusUnhealthy, nilPinger.Status)
}

func TestCheckPerformanceHealthFailsPastThreshold(t *testing.T) {
	thresholds := DefaultThresholds()
	thresholds.SearchEndpointsMaxMS = 100
	pm := NewPerformanceMonitor(thresholds)
	checker := NewHealthChecker(pm, "test")

	pm.RecordRequest(MethodSearchEndpoints, 10*time.Millisecond, "")
	assert.Equal(t, HealthStatusHealthy, checker.CheckPerformanceHealth().Status)

	pm.RecordRequest(MethodSearchEndpoints, 250*time.Millisecond, "")
	assert.Equal(t, HealthStatusUnhealthy, checker.CheckPerformanceHealth().Status)
}

func TestGetOverallHealthAggregatesComponents(t *testing.T) {
	db := openTestDB(t)
	pm := NewDefaultPerformanceMonitor()
	checker := NewHealthChecker(pm, "test")

	health := checker.GetOverallHealth(context.Background(), db, fakePinger{})
	assert.Contains(t, []HealthStatus{HealthStatusHealthy, HealthStatusDegraded}, health.Status)
	assert.Contains(t, health.Components, "database")
	assert.Contains(t, health.Components, "mcp_server")
	assert.Contains(t, health.Components, "performance")
}

func TestGetBasicHealthNeverTouchesDatabase(t *testing.T) {
	checker := NewHealthChecker(NewDefaultPerformanceMonitor(), "test")
	health := checker.GetBasicHealth()
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
}
