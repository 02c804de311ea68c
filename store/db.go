package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/semaphore"

	"github.com/erraggy/oaskb/oaserrors"
)

// Config configures an opened DB's pool limits and SQLite pragmas.
// Grounded on the fredcamaral-mcp-alfarrabio ConnectionPool config shape,
// adapted from a generic PoolConfig to SQLite's single-writer model.
type Config struct {
	// Path is the SQLite database file path. ":memory:" opens an in-process database.
	Path string
	// MaxOpenConns bounds database/sql's physical connection count.
	MaxOpenConns int
	// MaxIdleConns bounds idle connections kept warm.
	MaxIdleConns int
	// ConnMaxLifetime recycles connections older than this; zero means unbounded.
	ConnMaxLifetime time.Duration
	// BusyTimeout is passed as SQLite's busy_timeout pragma, in milliseconds.
	BusyTimeout time.Duration
	// AcquireTimeout bounds how long Acquire waits on the semaphore before
	// returning ResourceExhaustedError. Zero means DefaultAcquireTimeout.
	AcquireTimeout time.Duration
	// MaxConcurrentAcquires bounds logical statement-level concurrency,
	// independent of MaxOpenConns. Zero means MaxOpenConns.
	MaxConcurrentAcquires int64
}

// DefaultConfig returns sensible single-node defaults: WAL mode, a handful of
// open connections (SQLite serializes writers regardless), and a 5s busy timeout.
func DefaultConfig(path string) Config {
	return Config{
		Path:                  path,
		MaxOpenConns:          8,
		MaxIdleConns:          4,
		ConnMaxLifetime:       time.Hour,
		BusyTimeout:           5 * time.Second,
		AcquireTimeout:        DefaultAcquireTimeout,
		MaxConcurrentAcquires: 8,
	}
}

// DefaultAcquireTimeout bounds how long a caller waits for a semaphore slot
// before the pool raises ResourceExhaustedError.
const DefaultAcquireTimeout = 10 * time.Second

// DB wraps *sql.DB with a semaphore that bounds logical acquisitions
// separately from the driver's own connection limit: a caller-level pool
// where acquiring beyond the configured concurrency raises ResourceExhausted
// rather than blocking indefinitely.
type DB struct {
	sql            *sql.DB
	sem            *semaphore.Weighted
	acquireTimeout time.Duration
}

// Open opens (or creates) the SQLite database at cfg.Path, applies pragmas,
// and returns a pooled DB ready for Acquire.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "open", Cause: err}
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "ping", Cause: err}
	}

	weight := cfg.MaxConcurrentAcquires
	if weight <= 0 {
		weight = int64(cfg.MaxOpenConns)
	}
	timeout := cfg.AcquireTimeout
	if timeout <= 0 {
		timeout = DefaultAcquireTimeout
	}

	return &DB{sql: sqlDB, sem: semaphore.NewWeighted(weight), acquireTimeout: timeout}, nil
}

// SQL exposes the underlying *sql.DB for callers that need it directly
// (migrations, integrity checks) without going through Acquire's bookkeeping.
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Acquire reserves one logical slot, bounded by cfg.AcquireTimeout, and
// returns a release function that must be called exactly once.
func (d *DB) Acquire(ctx context.Context) (release func(), err error) {
	acquireCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()

	start := time.Now()
	if err := d.sem.Acquire(acquireCtx, 1); err != nil {
		return nil, &oaserrors.ResourceExhaustedError{Resource: "db_connection", Waited: time.Since(start)}
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		d.sem.Release(1)
	}, nil
}

// Close releases the underlying *sql.DB.
func (d *DB) Close() error {
	return d.sql.Close()
}

// CheckIntegrity runs PRAGMA integrity_check and foreign_key_check, and
// verifies the required tables are present, returning a DataIntegrityError
// describing the first failure found.
func CheckIntegrity(ctx context.Context, d *DB) error {
	var result string
	if err := d.sql.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "integrity_check", Cause: err}
	}
	if result != "ok" {
		return &oaserrors.DataIntegrityError{Table: "*", Message: "integrity_check: " + result}
	}

	rows, err := d.sql.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "foreign_key_check", Cause: err}
	}
	defer rows.Close()
	if rows.Next() {
		return &oaserrors.DataIntegrityError{Table: "*", Message: "foreign_key_check reported violations"}
	}
	if err := rows.Err(); err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "foreign_key_check", Cause: err}
	}

	for _, table := range requiredTables {
		var name string
		row := d.sql.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := row.Scan(&name); err != nil {
			return &oaserrors.DataIntegrityError{Table: table, Message: "required table is missing"}
		}
	}
	return nil
}

var requiredTables = []string{
	"api_metadata", "endpoints", "schemas", "security_schemes",
	"category_catalog", "database_migrations",
}
