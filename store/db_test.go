package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := DefaultConfig(path)
	d, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = MigrateToLatest(context.Background(), d, false)
	require.NoError(t, err)
	return d
}

func TestOpenAppliesMigrationsAndPasses(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, CheckIntegrity(context.Background(), d))
}

func TestAcquireReleasesSlot(t *testing.T) {
	d := openTestDB(t)
	release, err := d.Acquire(context.Background())
	require.NoError(t, err)
	release()
	release2, err := d.Acquire(context.Background())
	require.NoError(t, err)
	release2()
}
