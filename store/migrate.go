package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/erraggy/oaskb/oaserrors"
)

// Migrations is the ordered set of schema migrations applied by MigrateToLatest.
// Checksums are computed at init time from UpSQL, so when an already-applied
// migration's UpSQL is edited afterwards, MigrateToLatest finds that the
// recorded checksum no longer matches and returns MigrationIntegrityError.
var Migrations = buildMigrations([]Migration{
	{
		Version:     "0001",
		Name:        "initial_schema",
		Description: "api_metadata, endpoints, schemas, security_schemes, category_catalog",
		UpSQL:       migration0001Up,
		DownSQL:     migration0001Down,
	},
	{
		Version:     "0002",
		Name:        "endpoints_fts",
		Description: "FTS5 virtual table mirroring searchable endpoint text",
		UpSQL:       migration0002Up,
		DownSQL:     migration0002Down,
	},
	{
		Version:     "0003",
		Name:        "api_metadata_content_hash_unique",
		Description: "unique index on api_metadata.content_hash so re-ingesting an unchanged document is detectable",
		UpSQL:       migration0003Up,
		DownSQL:     migration0003Down,
	},
})

func buildMigrations(ms []Migration) []Migration {
	for i := range ms {
		ms[i].Checksum = checksum(ms[i].UpSQL)
	}
	return ms
}

func checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

const migrationsTableDDL = `
CREATE TABLE IF NOT EXISTS database_migrations (
	version    TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL,
	checksum   TEXT NOT NULL
);`

// MigrateToLatest applies every migration in Migrations not yet recorded in
// database_migrations, in order, each inside its own transaction. dryRun
// reports what would be applied without executing any UpSQL.
func MigrateToLatest(ctx context.Context, d *DB, dryRun bool) ([]string, error) {
	if _, err := d.sql.ExecContext(ctx, migrationsTableDDL); err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "create database_migrations", Cause: err}
	}

	applied, err := appliedVersions(ctx, d)
	if err != nil {
		return nil, err
	}

	var newlyApplied []string
	for _, m := range Migrations {
		if rec, ok := applied[m.Version]; ok {
			if rec.Checksum != m.Checksum {
				return newlyApplied, &oaserrors.MigrationIntegrityError{
					Version: m.Version, ExpectedChecksum: m.Checksum, ActualChecksum: rec.Checksum,
				}
			}
			continue
		}
		if dryRun {
			newlyApplied = append(newlyApplied, m.Version)
			continue
		}
		if err := ApplyMigration(ctx, d, m); err != nil {
			return newlyApplied, err
		}
		newlyApplied = append(newlyApplied, m.Version)
	}
	return newlyApplied, nil
}

// ApplyMigration runs one migration's UpSQL and records it, all within a
// single transaction so a failed migration leaves no partial schema change.
func ApplyMigration(ctx context.Context, d *DB, m Migration) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "begin migration tx", Cause: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
		return fmt.Errorf("migration %s (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO database_migrations (version, name, applied_at, checksum)
		VALUES (?, ?, datetime('now'), ?)`, m.Version, m.Name, m.Checksum); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "commit migration tx", Cause: err}
	}
	return nil
}

// Rollback runs one migration's DownSQL and removes its database_migrations record.
func Rollback(ctx context.Context, d *DB, m Migration) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return &oaserrors.DatabaseConnectionError{Operation: "begin rollback tx", Cause: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.DownSQL); err != nil {
		return fmt.Errorf("rollback %s (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM database_migrations WHERE version = ?`, m.Version); err != nil {
		return fmt.Errorf("removing migration record %s: %w", m.Version, err)
	}
	return tx.Commit()
}

func appliedVersions(ctx context.Context, d *DB) (map[string]MigrationRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT version, name, applied_at, checksum FROM database_migrations`)
	if err != nil {
		return nil, &oaserrors.DatabaseConnectionError{Operation: "query database_migrations", Cause: err}
	}
	defer rows.Close()

	result := make(map[string]MigrationRecord)
	for rows.Next() {
		var rec MigrationRecord
		var appliedAt string
		if err := rows.Scan(&rec.Version, &rec.Name, &appliedAt, &rec.Checksum); err != nil {
			return nil, &oaserrors.DatabaseConnectionError{Operation: "scan database_migrations", Cause: err}
		}
		result[rec.Version] = rec
	}
	return result, rows.Err()
}

const migration0001Up = `
CREATE TABLE api_metadata (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path             TEXT NOT NULL,
	content_hash          TEXT NOT NULL,
	title                 TEXT NOT NULL,
	version               TEXT NOT NULL,
	openapi_version       TEXT NOT NULL,
	description           TEXT,
	endpoint_count        INTEGER NOT NULL DEFAULT 0,
	schema_count          INTEGER NOT NULL DEFAULT 0,
	security_scheme_count INTEGER NOT NULL DEFAULT 0,
	ingested_at           TEXT NOT NULL
);

CREATE TABLE schemas (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	api_id              INTEGER NOT NULL REFERENCES api_metadata(id) ON DELETE CASCADE,
	name                TEXT NOT NULL,
	title               TEXT,
	type                TEXT,
	format              TEXT,
	description         TEXT,
	properties_json      TEXT NOT NULL DEFAULT '[]',
	required_json        TEXT NOT NULL DEFAULT '[]',
	all_of_json          TEXT NOT NULL DEFAULT '[]',
	one_of_json          TEXT NOT NULL DEFAULT '[]',
	any_of_json          TEXT NOT NULL DEFAULT '[]',
	discriminator       TEXT,
	example_json         TEXT,
	reference_count     INTEGER NOT NULL DEFAULT 0,
	schema_deps_json     TEXT NOT NULL DEFAULT '[]',
	cyclic_deps_json     TEXT NOT NULL DEFAULT '[]',
	deprecated          INTEGER NOT NULL DEFAULT 0,
	extensions_json      TEXT NOT NULL DEFAULT '{}',
	searchable_text     TEXT NOT NULL DEFAULT '',
	UNIQUE(api_id, name)
);

CREATE TABLE security_schemes (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	api_id                INTEGER NOT NULL REFERENCES api_metadata(id) ON DELETE CASCADE,
	name                  TEXT NOT NULL,
	type                  TEXT NOT NULL,
	description           TEXT,
	api_key_name          TEXT,
	api_key_location      TEXT,
	http_scheme           TEXT,
	bearer_format         TEXT,
	oauth2_flows_json     TEXT NOT NULL DEFAULT '{}',
	openid_connect_url    TEXT,
	extensions_json       TEXT NOT NULL DEFAULT '{}',
	reference_count       INTEGER NOT NULL DEFAULT 0,
	UNIQUE(api_id, name)
);

CREATE TABLE endpoints (
	id                      INTEGER PRIMARY KEY AUTOINCREMENT,
	api_id                  INTEGER NOT NULL REFERENCES api_metadata(id) ON DELETE CASCADE,
	path_template           TEXT NOT NULL,
	method                  TEXT NOT NULL,
	operation_id            TEXT,
	summary                 TEXT,
	description             TEXT,
	tags_json               TEXT NOT NULL DEFAULT '[]',
	parameters_json         TEXT NOT NULL DEFAULT '[]',
	request_body_ref        TEXT,
	responses_json          TEXT NOT NULL DEFAULT '{}',
	security_json           TEXT NOT NULL DEFAULT '[]',
	deprecated              INTEGER NOT NULL DEFAULT 0,
	extensions_json         TEXT NOT NULL DEFAULT '{}',
	schema_deps_json        TEXT NOT NULL DEFAULT '[]',
	security_deps_json      TEXT NOT NULL DEFAULT '[]',
	category                TEXT,
	category_group          TEXT,
	searchable_text         TEXT NOT NULL DEFAULT '',
	UNIQUE(api_id, path_template, method)
);

CREATE TABLE category_catalog (
	api_id          INTEGER NOT NULL REFERENCES api_metadata(id) ON DELETE CASCADE,
	category_name   TEXT NOT NULL,
	display_name    TEXT NOT NULL,
	description     TEXT,
	category_group  TEXT,
	endpoint_count  INTEGER NOT NULL DEFAULT 0,
	http_methods_json TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (api_id, category_name)
);

CREATE INDEX idx_endpoints_api_id ON endpoints(api_id);
CREATE INDEX idx_endpoints_category ON endpoints(api_id, category);
CREATE INDEX idx_schemas_api_id ON schemas(api_id);
CREATE INDEX idx_security_schemes_api_id ON security_schemes(api_id);
`

const migration0001Down = `
DROP TABLE IF EXISTS category_catalog;
DROP TABLE IF EXISTS endpoints;
DROP TABLE IF EXISTS security_schemes;
DROP TABLE IF EXISTS schemas;
DROP TABLE IF EXISTS api_metadata;
`

const migration0002Up = `
CREATE VIRTUAL TABLE endpoints_fts USING fts5(
	path_template, method, operation_id, summary, description, tags, searchable_text,
	content='endpoints', content_rowid='id'
);

CREATE TRIGGER endpoints_fts_insert AFTER INSERT ON endpoints BEGIN
	INSERT INTO endpoints_fts(rowid, path_template, method, operation_id, summary, description, tags, searchable_text)
	VALUES (new.id, new.path_template, new.method, new.operation_id, new.summary, new.description, new.tags_json, new.searchable_text);
END;

CREATE TRIGGER endpoints_fts_delete AFTER DELETE ON endpoints BEGIN
	INSERT INTO endpoints_fts(endpoints_fts, rowid, path_template, method, operation_id, summary, description, tags, searchable_text)
	VALUES('delete', old.id, old.path_template, old.method, old.operation_id, old.summary, old.description, old.tags_json, old.searchable_text);
END;

CREATE TRIGGER endpoints_fts_update AFTER UPDATE ON endpoints BEGIN
	INSERT INTO endpoints_fts(endpoints_fts, rowid, path_template, method, operation_id, summary, description, tags, searchable_text)
	VALUES('delete', old.id, old.path_template, old.method, old.operation_id, old.summary, old.description, old.tags_json, old.searchable_text);
	INSERT INTO endpoints_fts(rowid, path_template, method, operation_id, summary, description, tags, searchable_text)
	VALUES (new.id, new.path_template, new.method, new.operation_id, new.summary, new.description, new.tags_json, new.searchable_text);
END;
`

const migration0002Down = `
DROP TRIGGER IF EXISTS endpoints_fts_update;
DROP TRIGGER IF EXISTS endpoints_fts_delete;
DROP TRIGGER IF EXISTS endpoints_fts_insert;
DROP TABLE IF EXISTS endpoints_fts;
`

const migration0003Up = `
CREATE UNIQUE INDEX idx_api_metadata_content_hash ON api_metadata(content_hash);
`

const migration0003Down = `
DROP INDEX IF EXISTS idx_api_metadata_content_hash;
`
