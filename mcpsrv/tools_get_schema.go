package mcpsrv

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaskb/store"
)

type getSchemaInput struct {
	ComponentName        string `json:"componentName" jsonschema:"Schema component name, or a #/components/schemas/X-style reference"`
	ResolveDependencies   *bool  `json:"resolveDependencies,omitempty" jsonschema:"Resolve and include transitively referenced schemas, default true"`
	MaxDepth              int    `json:"maxDepth,omitempty" jsonschema:"Maximum dependency-resolution depth (1-10), default 3"`
	IncludeExamples       *bool  `json:"includeExamples,omitempty" jsonschema:"Include each schema's example value, default true"`
	IncludeExtensions     *bool  `json:"includeExtensions,omitempty" jsonschema:"Include each schema's x- extension fields, default true"`
}

type schemaProperty struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	SubSchemaRef string `json:"sub_schema_ref,omitempty"`
}

type schemaView struct {
	Name               string            `json:"name"`
	Title              string            `json:"title,omitempty"`
	Type               string            `json:"type,omitempty"`
	Format             string            `json:"format,omitempty"`
	Description        string            `json:"description,omitempty"`
	Properties         []schemaProperty  `json:"properties,omitempty"`
	Required           []string          `json:"required,omitempty"`
	AllOf              []string          `json:"all_of,omitempty"`
	OneOf              []string          `json:"one_of,omitempty"`
	AnyOf              []string          `json:"any_of,omitempty"`
	Discriminator      string            `json:"discriminator,omitempty"`
	Example            any               `json:"example,omitempty"`
	Deprecated         bool              `json:"deprecated"`
	SchemaDependencies []string          `json:"schema_dependencies,omitempty"`
	Extensions         map[string]any    `json:"extensions,omitempty"`
}

func toSchemaView(s store.Schema, includeExamples, includeExtensions bool) schemaView {
	v := schemaView{
		Name:               s.Name,
		Title:              s.Title,
		Type:               s.Type,
		Format:             s.Format,
		Description:        s.Description,
		Required:           s.Required,
		AllOf:              s.AllOf,
		OneOf:              s.OneOf,
		AnyOf:              s.AnyOf,
		Discriminator:      s.Discriminator,
		Deprecated:         s.Deprecated,
		SchemaDependencies: s.SchemaDependencies,
	}
	for _, p := range s.Properties {
		v.Properties = append(v.Properties, schemaProperty{Name: p.Name, Type: p.Type, SubSchemaRef: p.SubSchemaRef})
	}
	if includeExamples {
		v.Example = s.Example
	}
	if includeExtensions {
		v.Extensions = s.Extensions
	}
	return v
}

type getSchemaMetadata struct {
	ComponentName        string              `json:"component_name"`
	NormalizedName        string              `json:"normalized_name"`
	ResolutionDepth        int                 `json:"resolution_depth"`
	TotalDependencies      int                 `json:"total_dependencies"`
	CircularReferences     []string            `json:"circular_references,omitempty"`
	MaxDepthReached        bool                `json:"max_depth_reached"`
	Unresolved             []string            `json:"unresolved,omitempty"`
	ResolutionSettings     resolutionSettings  `json:"resolution_settings"`
}

type resolutionSettings struct {
	ResolveDependencies bool `json:"resolveDependencies"`
	MaxDepth            int  `json:"maxDepth"`
	IncludeExamples     bool `json:"includeExamples"`
	IncludeExtensions   bool `json:"includeExtensions"`
}

type getSchemaOutput struct {
	Schema       schemaView        `json:"schema"`
	Dependencies []schemaView      `json:"dependencies"`
	Metadata     getSchemaMetadata `json:"metadata"`
}

func (sc *ServerContext) handleGetSchema(ctx context.Context, _ *mcp.CallToolRequest, input getSchemaInput) (*mcp.CallToolResult, getSchemaOutput, error) {
	if err := validateComponentName(input.ComponentName); err != nil {
		return errResult(err), getSchemaOutput{}, nil
	}
	maxDepth, err := validateMaxDepth(input.MaxDepth)
	if err != nil {
		return errResult(err), getSchemaOutput{}, nil
	}
	resolveDeps := true
	if input.ResolveDependencies != nil {
		resolveDeps = *input.ResolveDependencies
	}
	includeExamples := true
	if input.IncludeExamples != nil {
		includeExamples = *input.IncludeExamples
	}
	includeExtensions := true
	if input.IncludeExtensions != nil {
		includeExtensions = *input.IncludeExtensions
	}

	out, err := runWithMiddleware(ctx, sc, MethodGetSchema, func(ctx context.Context) (getSchemaOutput, error) {
		return getSchema(ctx, sc, input.ComponentName, resolveDeps, maxDepth, includeExamples, includeExtensions)
	})
	if err != nil {
		return errResult(err), getSchemaOutput{}, nil
	}
	return nil, out, nil
}

func getSchema(ctx context.Context, sc *ServerContext, componentName string, resolveDeps bool, maxDepth int, includeExamples, includeExtensions bool) (getSchemaOutput, error) {
	normalized := normalizeComponentName(componentName)

	api, err := sc.currentAPI(ctx)
	if err != nil {
		return getSchemaOutput{}, err
	}
	root, err := sc.Schemas.GetByName(ctx, api.ID, normalized)
	if err != nil {
		return getSchemaOutput{}, err
	}

	effectiveDepth := maxDepth
	if !resolveDeps {
		effectiveDepth = 0
	}
	resolution, err := sc.Schemas.GetSchemaWithDependenciesDetailed(ctx, root.ID, effectiveDepth)
	if err != nil {
		return getSchemaOutput{}, err
	}

	deps := make([]schemaView, 0, len(resolution.Schemas)-1)
	var circular []string
	for _, s := range resolution.Schemas {
		if s.Name == root.Name {
			continue
		}
		deps = append(deps, toSchemaView(s, includeExamples, includeExtensions))
	}
	for _, s := range resolution.Schemas {
		for _, cyc := range s.CyclicDependencies {
			circular = append(circular, fmt.Sprintf("%s -> %s", s.Name, cyc))
		}
	}
	sort.Strings(circular)

	return getSchemaOutput{
		Schema:       toSchemaView(root, includeExamples, includeExtensions),
		Dependencies: deps,
		Metadata: getSchemaMetadata{
			ComponentName:      componentName,
			NormalizedName:     normalized,
			ResolutionDepth:    resolution.Depth,
			TotalDependencies:  len(deps),
			CircularReferences: circular,
			MaxDepthReached:    resolution.DepthBoundHit,
			Unresolved:         resolution.Unresolved,
			ResolutionSettings: resolutionSettings{
				ResolveDependencies: resolveDeps,
				MaxDepth:            maxDepth,
				IncludeExamples:     includeExamples,
				IncludeExtensions:   includeExtensions,
			},
		},
	}, nil
}
