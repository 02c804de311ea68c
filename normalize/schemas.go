package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/store"
)

// SchemaResult is the output of normalizing a document's component schemas:
// the normalized rows, the dependency graph used to compute them (bare
// schema name -> bare schema names it references), and any warnings raised
// along the way (e.g. unresolved references).
type SchemaResult struct {
	Schemas  []store.Schema
	Graph    map[string][]string
	Warnings []string
}

// Schemas normalizes every entry of a document's component schemas
// (components.schemas for OAS 3.x, definitions for OAS 2.0) into store rows,
// computing each schema's direct and cyclic dependencies.
func Schemas(accessor parser.DocumentAccessor) (*SchemaResult, error) {
	raw := accessor.GetSchemas()
	graph := make(map[string][]string, len(raw))
	direct := make(map[string][]string, len(raw))

	for _, name := range sortedKeys(raw) {
		seen := make(map[string]struct{})
		collectSchemaRefs(raw[name], seen)
		// A schema referencing itself directly is still a cycle: the
		// self-edge stays in its dependencies so DetectCycles records it.
		deps := make([]string, 0, len(seen))
		for dep := range seen {
			deps = append(deps, dep)
		}
		sort.Strings(deps)
		direct[name] = deps
		graph[name] = deps
	}

	cycles := DetectCycles(graph)
	cyclicByNode := make(map[string][]string)
	for _, edge := range cycles {
		from, to := edge[0], edge[1]
		cyclicByNode[from] = append(cyclicByNode[from], to)
	}

	refCounts := computeReferenceCounts(raw, direct)

	var warnings []string
	schemas := make([]store.Schema, 0, len(raw))
	for _, name := range sortedKeys(raw) {
		s := raw[name]
		for _, dep := range direct[name] {
			if _, ok := raw[dep]; !ok && IsLocalComponentRef(accessor.SchemaRefPrefix() + dep) {
				warnings = append(warnings, fmt.Sprintf("schema %q references undefined schema %q", name, dep))
			}
		}

		row := store.Schema{
			Name:               name,
			Title:              s.Title,
			Type:               schemaTypeString(s),
			Format:             s.Format,
			Description:        s.Description,
			Properties:         schemaProperties(s),
			Required:           append([]string(nil), s.Required...),
			AllOf:              compositionNames(s.AllOf),
			OneOf:              compositionNames(s.OneOf),
			AnyOf:              compositionNames(s.AnyOf),
			Example:            schemaExample(s),
			ReferenceCount:     refCounts[name],
			SchemaDependencies: direct[name],
			CyclicDependencies: sortedStrings(cyclicByNode[name]),
			Deprecated:         s.Deprecated,
			Extensions:         extractExtensions(s.Extra),
		}
		if s.Discriminator != nil {
			row.Discriminator = s.Discriminator.PropertyName
		}
		row.SearchableText = buildSchemaSearchableText(row)
		schemas = append(schemas, row)
	}

	return &SchemaResult{Schemas: schemas, Graph: graph, Warnings: warnings}, nil
}

// computeReferenceCounts counts, for every schema name, how many other
// schemas in the component set declare a direct dependency on it.
func computeReferenceCounts(raw map[string]*parser.Schema, direct map[string][]string) map[string]int {
	counts := make(map[string]int, len(raw))
	for name, deps := range direct {
		for _, dep := range deps {
			if dep == name {
				continue
			}
			counts[dep]++
		}
	}
	return counts
}

// schemaTypeString renders the polymorphic Type field (string or []string in
// JSON Schema 2020-12) as a single descriptive string, joining multi-type
// unions with "|".
func schemaTypeString(s *parser.Schema) string {
	switch t := s.Type.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, "|")
	case []any:
		parts := make([]string, 0, len(t))
		for _, v := range t {
			if str, ok := v.(string); ok {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, "|")
	default:
		return ""
	}
}

// schemaExample prefers the single-value Example field and falls back to the
// first entry of Examples (2020-12 style) when present.
func schemaExample(s *parser.Schema) any {
	if s.Example != nil {
		return s.Example
	}
	if len(s.Examples) > 0 {
		return s.Examples[0]
	}
	return nil
}

// schemaProperties converts a schema's ordered property map into the store's
// flattened property-descriptor list, recording a $ref for sub-schemas that
// are themselves references rather than inlining their full shape.
func schemaProperties(s *parser.Schema) []store.SchemaProperty {
	props := make([]store.SchemaProperty, 0, len(s.Properties))
	for _, name := range sortedKeys(s.Properties) {
		sub := s.Properties[name]
		prop := store.SchemaProperty{Name: name, Type: schemaTypeString(sub)}
		if sub.Ref != "" {
			prop.SubSchemaRef = refKey(sub.Ref)
		}
		props = append(props, prop)
	}
	return props
}

// compositionNames renders an allOf/oneOf/anyOf list as bare schema names for
// named references, or "<inline>" for embedded sub-schemas without a $ref.
func compositionNames(schemas []*parser.Schema) []string {
	if len(schemas) == 0 {
		return nil
	}
	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		if s.Ref != "" {
			names = append(names, refKey(s.Ref))
		} else {
			names = append(names, "<inline>")
		}
	}
	return names
}

// buildSchemaSearchableText concatenates the human-readable fields of a
// normalized schema into a single blob fed to the full-text index.
func buildSchemaSearchableText(s store.Schema) string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Title != "" {
		b.WriteString(" ")
		b.WriteString(s.Title)
	}
	if s.Description != "" {
		b.WriteString(" ")
		b.WriteString(s.Description)
	}
	for _, p := range s.Properties {
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	return b.String()
}
