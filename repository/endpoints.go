package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"unicode"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

type endpointMapper struct{}

func (endpointMapper) Table() string { return "endpoints" }

func (endpointMapper) Columns() []string {
	return []string{
		"api_id", "path_template", "method", "operation_id", "summary", "description",
		"tags_json", "parameters_json", "request_body_ref", "responses_json",
		"security_json", "deprecated", "extensions_json", "schema_deps_json",
		"security_deps_json", "category", "category_group", "searchable_text",
	}
}

func (endpointMapper) Values(e store.Endpoint) []any {
	return []any{
		e.APIID, e.PathTemplate, e.Method, e.OperationID, e.Summary, e.Description,
		marshalJSON(e.Tags, "[]"), marshalJSON(e.Parameters, "[]"), e.RequestBodyRef,
		marshalJSON(e.Responses, "{}"), marshalJSON(e.Security, "[]"), boolToInt(e.Deprecated),
		marshalJSON(e.Extensions, "{}"), marshalJSON(e.SchemaDependencies, "[]"),
		marshalJSON(e.SecurityDependencies, "[]"), e.Category, e.CategoryGroup, e.SearchableText,
	}
}

func (endpointMapper) Scan(row Scanner) (store.Endpoint, error) {
	var e store.Endpoint
	var tagsJSON, paramsJSON, responsesJSON, securityJSON, extensionsJSON, schemaDepsJSON, securityDepsJSON string
	var deprecated int
	err := row.Scan(
		&e.ID, &e.APIID, &e.PathTemplate, &e.Method, &e.OperationID, &e.Summary, &e.Description,
		&tagsJSON, &paramsJSON, &e.RequestBodyRef, &responsesJSON, &securityJSON, &deprecated,
		&extensionsJSON, &schemaDepsJSON, &securityDepsJSON, &e.Category, &e.CategoryGroup, &e.SearchableText,
	)
	if err != nil {
		return e, err
	}
	e.Tags = unmarshalJSON[[]string](tagsJSON)
	e.Parameters = unmarshalJSON[[]store.Parameter](paramsJSON)
	e.Responses = unmarshalJSON[map[string]store.Response](responsesJSON)
	e.Security = unmarshalJSON[[]store.SecurityRequirementAlternative](securityJSON)
	e.Extensions = unmarshalJSON[map[string]any](extensionsJSON)
	e.SchemaDependencies = unmarshalJSON[[]string](schemaDepsJSON)
	e.SecurityDependencies = unmarshalJSON[[]string](securityDepsJSON)
	e.Deprecated = deprecated != 0
	return e, nil
}

func (endpointMapper) IDOf(e store.Endpoint) int64 { return e.ID }

func (endpointMapper) ConflictFields() []string { return []string{"api_id", "path_template", "method"} }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// EndpointRepository persists and queries store.Endpoint rows, plus the
// category catalog that categorize.Catalog builds alongside them.
type EndpointRepository struct {
	*Base[store.Endpoint]
	db *store.DB
}

// NewEndpointRepository constructs an EndpointRepository over db.
func NewEndpointRepository(db *store.DB) *EndpointRepository {
	return &EndpointRepository{Base: NewBase[store.Endpoint](db, endpointMapper{}), db: db}
}

// SearchEndpoints runs a full-text search over keywords, ANDed with equality
// filters on method, category, and category_group. An empty keywords string
// skips the FTS5 MATCH clause entirely and filters by the equality
// predicates alone. category and categoryGroup are matched case-insensitively
// in either their catalog (snake_case) or display (Title-Case-hyphenated)
// form via NormalizeCategoryFilterValue.
func (r *EndpointRepository) SearchEndpoints(ctx context.Context, apiID int64, keywords string, methods []string, category, categoryGroup string, limit, offset int) ([]store.Endpoint, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	cols := endpointMapper{}.Columns()
	var b strings.Builder
	var args []any
	// prefix qualifies columns that endpoints_fts also has once it is joined.
	prefix := ""

	if strings.TrimSpace(keywords) != "" {
		prefix = "e."
		b.WriteString("SELECT e.id")
		for _, c := range cols {
			b.WriteString(", e.")
			b.WriteString(c)
		}
		b.WriteString(" FROM endpoints e JOIN endpoints_fts f ON f.rowid = e.id WHERE e.api_id = ? AND endpoints_fts MATCH ?")
		args = append(args, apiID, keywords)
	} else {
		b.WriteString("SELECT id")
		for _, c := range cols {
			b.WriteString(", ")
			b.WriteString(c)
		}
		b.WriteString(" FROM endpoints WHERE api_id = ?")
		args = append(args, apiID)
	}

	if category != "" {
		b.WriteString(" AND " + prefix + "category = ?")
		args = append(args, NormalizeCategoryFilterValue(category))
	}
	if categoryGroup != "" {
		b.WriteString(" AND " + prefix + "category_group = ?")
		args = append(args, NormalizeCategoryFilterValue(categoryGroup))
	}
	if len(methods) > 0 {
		placeholders := make([]string, len(methods))
		for i, m := range methods {
			placeholders[i] = "?"
			args = append(args, strings.ToUpper(m))
		}
		b.WriteString(" AND " + prefix + "method IN (")
		b.WriteString(strings.Join(placeholders, ", "))
		b.WriteString(")")
	}
	b.WriteString(" ORDER BY " + prefix + "path_template, " + prefix + "method")
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
		if offset > 0 {
			b.WriteString(" OFFSET ?")
			args = append(args, offset)
		}
	}

	rows, err := r.db.SQL().QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, &oaserrors.RepositoryError{Operation: "search_endpoints", Cause: err}
	}
	defer rows.Close()

	var out []store.Endpoint
	mapper := endpointMapper{}
	for rows.Next() {
		e, err := mapper.Scan(rows)
		if err != nil {
			return nil, &oaserrors.RepositoryError{Operation: "search_endpoints_scan", Cause: err}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByPathAndMethod returns the endpoint at pathTemplate/method within
// apiID, the lookup getExample uses when its endpoint argument is a path
// rather than an endpoint id.
func (r *EndpointRepository) GetByPathAndMethod(ctx context.Context, apiID int64, pathTemplate, method string) (store.Endpoint, error) {
	rows, err := r.List(ctx, ListOptions{
		Filters: []Filter{
			{Field: "api_id", Value: apiID},
			{Field: "path_template", Value: pathTemplate},
			{Field: "method", Value: strings.ToUpper(method)},
		},
		Limit: 1,
	})
	if err != nil {
		return store.Endpoint{}, err
	}
	if len(rows) == 0 {
		return store.Endpoint{}, &oaserrors.ResourceNotFoundError{
			ResourceType: "endpoint",
			Identifier:   method + " " + pathTemplate,
		}
	}
	return rows[0], nil
}

// GetCategories returns the category catalog for one ingested API, optionally
// restricted to one category group.
func (r *EndpointRepository) GetCategories(ctx context.Context, apiID int64, group string) ([]store.CategoryCatalogEntry, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := `SELECT category_name, display_name, description, category_group, endpoint_count, http_methods_json
		FROM category_catalog WHERE api_id = ?`
	args := []any{apiID}
	if group != "" {
		query += " AND category_group = ?"
		args = append(args, NormalizeCategoryFilterValue(group))
	}
	query += " ORDER BY category_name"

	rows, err := r.db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &oaserrors.RepositoryError{Operation: "get_categories", Cause: err}
	}
	defer rows.Close()

	var out []store.CategoryCatalogEntry
	for rows.Next() {
		var c store.CategoryCatalogEntry
		var description, group *string
		var methodsJSON string
		if err := rows.Scan(&c.CategoryName, &c.DisplayName, &description, &group, &c.EndpointCount, &methodsJSON); err != nil {
			return nil, &oaserrors.RepositoryError{Operation: "get_categories_scan", Cause: err}
		}
		if description != nil {
			c.Description = *description
		}
		if group != nil {
			c.CategoryGroup = *group
		}
		c.HTTPMethods = unmarshalJSON[[]string](methodsJSON)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCategoryGroups returns the distinct non-empty category groups for one
// ingested API, sorted.
func (r *EndpointRepository) GetCategoryGroups(ctx context.Context, apiID int64) ([]string, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := r.db.SQL().QueryContext(ctx,
		`SELECT DISTINCT category_group FROM category_catalog WHERE api_id = ? AND category_group != '' ORDER BY category_group`, apiID)
	if err != nil {
		return nil, &oaserrors.RepositoryError{Operation: "get_category_groups", Cause: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, &oaserrors.RepositoryError{Operation: "get_category_groups_scan", Cause: err}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// RebuildCategoryCatalog recomputes category_catalog for apiID from its
// current endpoints rows, grouped by category. Called after persisting a
// batch of endpoints within the same transaction.
func (r *EndpointRepository) RebuildCategoryCatalog(ctx context.Context, tx *sql.Tx, apiID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM category_catalog WHERE api_id = ?`, apiID); err != nil {
		return &oaserrors.RepositoryError{Operation: "rebuild_category_catalog_clear", Cause: err}
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT category, category_group, method FROM endpoints WHERE api_id = ? AND category != '' AND category IS NOT NULL`, apiID)
	if err != nil {
		return &oaserrors.RepositoryError{Operation: "rebuild_category_catalog_scan", Cause: err}
	}
	type agg struct {
		group   string
		count   int
		methods map[string]struct{}
	}
	catalog := map[string]*agg{}
	var order []string
	for rows.Next() {
		var category, group, method string
		if err := rows.Scan(&category, &group, &method); err != nil {
			rows.Close()
			return &oaserrors.RepositoryError{Operation: "rebuild_category_catalog_row", Cause: err}
		}
		a, ok := catalog[category]
		if !ok {
			a = &agg{group: group, methods: map[string]struct{}{}}
			catalog[category] = a
			order = append(order, category)
		}
		a.count++
		a.methods[method] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return &oaserrors.RepositoryError{Operation: "rebuild_category_catalog_rows", Cause: err}
	}

	for _, name := range order {
		a := catalog[name]
		methods := make([]string, 0, len(a.methods))
		for m := range a.methods {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO category_catalog (api_id, category_name, display_name, description, category_group, endpoint_count, http_methods_json)
			 VALUES (?, ?, ?, '', ?, ?, ?)`,
			apiID, name, CategoryNameToDisplay(name), a.group, a.count, marshalJSON(methods, "[]"))
		if err != nil {
			return &oaserrors.RepositoryError{Operation: "rebuild_category_catalog_insert", Cause: err}
		}
	}
	return nil
}

// CategoryNameToDisplay renders a catalog category name ("search_promo") as
// a tag-style display name ("Search-promo"): capitalize the first character,
// replace underscores with hyphens. Comparisons against a tag's actual
// x-displayName are case-insensitive, so this only needs to get the first
// character and separators right.
func CategoryNameToDisplay(name string) string {
	hyphenated := strings.ReplaceAll(name, "_", "-")
	if hyphenated == "" {
		return hyphenated
	}
	runes := []rune(hyphenated)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// DisplayToCategoryName is the inverse of CategoryNameToDisplay: lowercases
// and replaces hyphens with underscores, for matching a tag's display form
// against the stored catalog name.
func DisplayToCategoryName(display string) string {
	return strings.ReplaceAll(strings.ToLower(display), "-", "_")
}

// NormalizeCategoryFilterValue accepts either a category name's catalog form
// or its tag display form and returns the catalog form, so a caller can pass
// either "search_promo" or "Search-Promo" to a category filter.
func NormalizeCategoryFilterValue(value string) string {
	if strings.Contains(value, "-") || (value != "" && unicode.IsUpper([]rune(value)[0])) {
		return DisplayToCategoryName(value)
	}
	return value
}
