package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

type schemaMapper struct{}

func (schemaMapper) Table() string { return "schemas" }

func (schemaMapper) Columns() []string {
	return []string{
		"api_id", "name", "title", "type", "format", "description",
		"properties_json", "required_json", "all_of_json", "one_of_json", "any_of_json",
		"discriminator", "example_json", "reference_count", "schema_deps_json",
		"cyclic_deps_json", "deprecated", "extensions_json", "searchable_text",
	}
}

func (schemaMapper) Values(s store.Schema) []any {
	return []any{
		s.APIID, s.Name, s.Title, s.Type, s.Format, s.Description,
		marshalJSON(s.Properties, "[]"), marshalJSON(s.Required, "[]"),
		marshalJSON(s.AllOf, "[]"), marshalJSON(s.OneOf, "[]"), marshalJSON(s.AnyOf, "[]"),
		s.Discriminator, marshalJSON(s.Example, "null"), s.ReferenceCount,
		marshalJSON(s.SchemaDependencies, "[]"), marshalJSON(s.CyclicDependencies, "[]"),
		boolToInt(s.Deprecated), marshalJSON(s.Extensions, "{}"), s.SearchableText,
	}
}

func (schemaMapper) Scan(row Scanner) (store.Schema, error) {
	var s store.Schema
	var propsJSON, reqJSON, allOfJSON, oneOfJSON, anyOfJSON, exampleJSON, depsJSON, cyclicJSON, extJSON string
	var deprecated int
	err := row.Scan(
		&s.ID, &s.APIID, &s.Name, &s.Title, &s.Type, &s.Format, &s.Description,
		&propsJSON, &reqJSON, &allOfJSON, &oneOfJSON, &anyOfJSON, &s.Discriminator,
		&exampleJSON, &s.ReferenceCount, &depsJSON, &cyclicJSON, &deprecated, &extJSON, &s.SearchableText,
	)
	if err != nil {
		return s, err
	}
	s.Properties = unmarshalJSON[[]store.SchemaProperty](propsJSON)
	s.Required = unmarshalJSON[[]string](reqJSON)
	s.AllOf = unmarshalJSON[[]string](allOfJSON)
	s.OneOf = unmarshalJSON[[]string](oneOfJSON)
	s.AnyOf = unmarshalJSON[[]string](anyOfJSON)
	s.Example = unmarshalJSON[any](exampleJSON)
	s.SchemaDependencies = unmarshalJSON[[]string](depsJSON)
	s.CyclicDependencies = unmarshalJSON[[]string](cyclicJSON)
	s.Extensions = unmarshalJSON[map[string]any](extJSON)
	s.Deprecated = deprecated != 0
	return s, nil
}

func (schemaMapper) IDOf(s store.Schema) int64 { return s.ID }

func (schemaMapper) ConflictFields() []string { return []string{"api_id", "name"} }

// SchemaRepository persists and queries store.Schema rows.
type SchemaRepository struct {
	*Base[store.Schema]
	db *store.DB
}

// NewSchemaRepository constructs a SchemaRepository over db.
func NewSchemaRepository(db *store.DB) *SchemaRepository {
	return &SchemaRepository{Base: NewBase[store.Schema](db, schemaMapper{}), db: db}
}

// GetByName returns the schema named name within api apiID.
func (r *SchemaRepository) GetByName(ctx context.Context, apiID int64, name string) (store.Schema, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return store.Schema{}, err
	}
	defer release()

	mapper := schemaMapper{}
	query := "SELECT id, " + joinColumns(mapper.Columns()) + " FROM schemas WHERE api_id = ? AND name = ?"
	row := r.db.SQL().QueryRowContext(ctx, query, apiID, name)
	s, err := mapper.Scan(row)
	if err == sql.ErrNoRows {
		return s, &oaserrors.ResourceNotFoundError{ResourceType: "schema", Identifier: name}
	}
	if err != nil {
		return s, &oaserrors.RepositoryError{Operation: "get_by_name", Cause: err}
	}
	return s, nil
}

// GetSchemaWithDependencies returns the schema with id and every schema it
// transitively depends on, breadth-first, bounded to maxDepth hops. The root
// schema is always first; results are deduplicated by name. maxDepth <= 0
// returns just the root.
func (r *SchemaRepository) GetSchemaWithDependencies(ctx context.Context, id int64, maxDepth int) ([]store.Schema, error) {
	root, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := []store.Schema{root}
	if maxDepth <= 0 {
		return out, nil
	}

	visited := map[string]bool{root.Name: true}
	frontier := root.SchemaDependencies

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, name := range frontier {
			if name == "<inline>" || visited[name] {
				continue
			}
			visited[name] = true
			s, err := r.GetByName(ctx, root.APIID, name)
			if err != nil {
				var notFound *oaserrors.ResourceNotFoundError
				if errors.As(err, &notFound) {
					continue
				}
				return nil, err
			}
			out = append(out, s)
			next = append(next, s.SchemaDependencies...)
		}
		frontier = next
	}
	return out, nil
}

// SchemaResolution is the detailed result of GetSchemaWithDependenciesDetailed:
// every resolved schema plus the names of any dependency that could not be
// found in the store.
type SchemaResolution struct {
	Schemas    []store.Schema
	Unresolved []string
	// Depth is the number of BFS hops actually traversed.
	Depth int
	// DepthBoundHit is true when traversal stopped because maxDepth was
	// reached while dependencies remained unexplored, rather than because
	// the dependency frontier was exhausted.
	DepthBoundHit bool
}

// GetSchemaWithDependenciesDetailed is GetSchemaWithDependencies plus
// traversal details: a dependency that is not in the store is left out of
// Schemas and its name is listed in Unresolved, and Depth/DepthBoundHit
// report how far the walk went.
func (r *SchemaRepository) GetSchemaWithDependenciesDetailed(ctx context.Context, id int64, maxDepth int) (SchemaResolution, error) {
	root, err := r.GetByID(ctx, id)
	if err != nil {
		return SchemaResolution{}, err
	}
	res := SchemaResolution{Schemas: []store.Schema{root}}
	if maxDepth <= 0 {
		return res, nil
	}

	visited := map[string]bool{root.Name: true}
	unresolved := map[string]bool{}
	frontier := root.SchemaDependencies

	depth := 0
	for ; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, name := range frontier {
			if name == "<inline>" || visited[name] {
				continue
			}
			visited[name] = true
			s, err := r.GetByName(ctx, root.APIID, name)
			if err != nil {
				var notFound *oaserrors.ResourceNotFoundError
				if errors.As(err, &notFound) {
					unresolved[name] = true
					continue
				}
				return SchemaResolution{}, err
			}
			res.Schemas = append(res.Schemas, s)
			next = append(next, s.SchemaDependencies...)
		}
		frontier = next
	}
	res.Depth = depth
	res.DepthBoundHit = depth == maxDepth && len(frontier) > 0
	for name := range unresolved {
		res.Unresolved = append(res.Unresolved, name)
	}
	sort.Strings(res.Unresolved)
	return res, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
