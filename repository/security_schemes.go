package repository

import (
	"context"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

type securitySchemeMapper struct{}

func (securitySchemeMapper) Table() string { return "security_schemes" }

func (securitySchemeMapper) Columns() []string {
	return []string{
		"api_id", "name", "type", "description", "api_key_name", "api_key_location",
		"http_scheme", "bearer_format", "oauth2_flows_json", "openid_connect_url",
		"extensions_json", "reference_count",
	}
}

func (securitySchemeMapper) Values(s store.SecurityScheme) []any {
	return []any{
		s.APIID, s.Name, s.Type, s.Description, s.APIKeyName, s.APIKeyLocation,
		s.HTTPScheme, s.BearerFormat, marshalJSON(s.OAuth2Flows, "{}"), s.OpenIDConnectURL,
		marshalJSON(s.Extensions, "{}"), s.ReferenceCount,
	}
}

func (securitySchemeMapper) Scan(row Scanner) (store.SecurityScheme, error) {
	var s store.SecurityScheme
	var flowsJSON, extJSON string
	err := row.Scan(
		&s.ID, &s.APIID, &s.Name, &s.Type, &s.Description, &s.APIKeyName, &s.APIKeyLocation,
		&s.HTTPScheme, &s.BearerFormat, &flowsJSON, &s.OpenIDConnectURL, &extJSON, &s.ReferenceCount,
	)
	if err != nil {
		return s, err
	}
	s.OAuth2Flows = unmarshalJSON[map[string]store.OAuth2Flow](flowsJSON)
	s.Extensions = unmarshalJSON[map[string]any](extJSON)
	return s, nil
}

func (securitySchemeMapper) IDOf(s store.SecurityScheme) int64 { return s.ID }

func (securitySchemeMapper) ConflictFields() []string { return []string{"api_id", "name"} }

// SecuritySchemeRepository persists and queries store.SecurityScheme rows.
type SecuritySchemeRepository struct {
	*Base[store.SecurityScheme]
}

// NewSecuritySchemeRepository constructs a SecuritySchemeRepository over db.
func NewSecuritySchemeRepository(db *store.DB) *SecuritySchemeRepository {
	return &SecuritySchemeRepository{Base: NewBase[store.SecurityScheme](db, securitySchemeMapper{})}
}

// GetByName returns the security scheme named name within api apiID.
func (r *SecuritySchemeRepository) GetByName(ctx context.Context, apiID int64, name string) (store.SecurityScheme, error) {
	rows, err := r.List(ctx, ListOptions{
		Filters: []Filter{{Field: "api_id", Value: apiID}, {Field: "name", Value: name}},
		Limit:   1,
	})
	if err != nil {
		return store.SecurityScheme{}, err
	}
	if len(rows) == 0 {
		return store.SecurityScheme{}, &oaserrors.ResourceNotFoundError{ResourceType: "security_scheme", Identifier: name}
	}
	return rows[0], nil
}
