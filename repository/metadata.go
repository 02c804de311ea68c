package repository

import (
	"context"
	"time"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

type apiMetadataMapper struct{}

func (apiMetadataMapper) Table() string { return "api_metadata" }

func (apiMetadataMapper) Columns() []string {
	return []string{
		"file_path", "content_hash", "title", "version", "openapi_version", "description",
		"endpoint_count", "schema_count", "security_scheme_count", "ingested_at",
	}
}

func (apiMetadataMapper) Values(m store.APIMetadata) []any {
	ingestedAt := m.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now().UTC()
	}
	return []any{
		m.FilePath, m.ContentHash, m.Title, m.Version, m.OpenAPIVersion, m.Description,
		m.EndpointCount, m.SchemaCount, m.SecuritySchemeCount, ingestedAt.UTC().Format(time.RFC3339),
	}
}

func (apiMetadataMapper) Scan(row Scanner) (store.APIMetadata, error) {
	var m store.APIMetadata
	var ingestedAt string
	err := row.Scan(
		&m.ID, &m.FilePath, &m.ContentHash, &m.Title, &m.Version, &m.OpenAPIVersion, &m.Description,
		&m.EndpointCount, &m.SchemaCount, &m.SecuritySchemeCount, &ingestedAt,
	)
	if err != nil {
		return m, err
	}
	if t, parseErr := time.Parse(time.RFC3339, ingestedAt); parseErr == nil {
		m.IngestedAt = t
	}
	return m, nil
}

func (apiMetadataMapper) IDOf(m store.APIMetadata) int64 { return m.ID }

func (apiMetadataMapper) ConflictFields() []string { return []string{"content_hash"} }

// APIMetadataRepository persists and queries store.APIMetadata rows, one per
// ingested document.
type APIMetadataRepository struct {
	*Base[store.APIMetadata]
	db *store.DB
}

// NewAPIMetadataRepository constructs an APIMetadataRepository over db.
func NewAPIMetadataRepository(db *store.DB) *APIMetadataRepository {
	return &APIMetadataRepository{Base: NewBase[store.APIMetadata](db, apiMetadataMapper{}), db: db}
}

// GetLatest returns the most recently ingested api_metadata row, the API the
// MCP method runtime operates against when a caller does not pin one
// explicitly.
func (r *APIMetadataRepository) GetLatest(ctx context.Context) (store.APIMetadata, error) {
	rows, err := r.List(ctx, ListOptions{OrderBy: "id DESC", Limit: 1})
	if err != nil {
		return store.APIMetadata{}, err
	}
	if len(rows) == 0 {
		return store.APIMetadata{}, &oaserrors.ResourceNotFoundError{ResourceType: "api_metadata", Identifier: "latest"}
	}
	return rows[0], nil
}

// GetByContentHash returns the metadata row for a previously ingested
// document with the same SHA-256 content hash, used by ingest to detect
// re-ingestion of an unchanged spec.
func (r *APIMetadataRepository) GetByContentHash(ctx context.Context, hash string) (store.APIMetadata, error) {
	rows, err := r.List(ctx, ListOptions{Filters: []Filter{{Field: "content_hash", Value: hash}}, Limit: 1})
	if err != nil {
		return store.APIMetadata{}, err
	}
	if len(rows) == 0 {
		return store.APIMetadata{}, &oaserrors.ResourceNotFoundError{ResourceType: "api_metadata", Identifier: hash}
	}
	return rows[0], nil
}
