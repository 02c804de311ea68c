package normalize

import (
	"sort"

	"github.com/erraggy/oaskb/parser"
)

// collectSchemaRefs recursively walks a schema and every sub-schema reachable
// from it, recording the bare component name of each local $ref encountered.
// Non-local refs are recorded too (by their raw string) so callers can warn
// about unresolved references without dropping them (spec fallback policy).
func collectSchemaRefs(s *parser.Schema, seen map[string]struct{}) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		seen[refKey(s.Ref)] = struct{}{}
		// A $ref node may carry no sibling schema data worth recursing into
		// in OAS 2.0/3.0, but 3.1 allows siblings — keep walking regardless.
	}

	for _, name := range sortedKeys(s.Properties) {
		collectSchemaRefs(s.Properties[name], seen)
	}
	for _, name := range sortedKeys(s.PatternProperties) {
		collectSchemaRefs(s.PatternProperties[name], seen)
	}
	collectSchemaRefs(s.PropertyNames, seen)
	collectSchemaRefs(asSchema(s.AdditionalProperties), seen)
	collectSchemaRefs(asSchema(s.Items), seen)
	for _, sub := range s.PrefixItems {
		collectSchemaRefs(sub, seen)
	}
	collectSchemaRefs(asSchema(s.AdditionalItems), seen)
	collectSchemaRefs(s.Contains, seen)

	for _, sub := range s.AllOf {
		collectSchemaRefs(sub, seen)
	}
	for _, sub := range s.OneOf {
		collectSchemaRefs(sub, seen)
	}
	for _, sub := range s.AnyOf {
		collectSchemaRefs(sub, seen)
	}
	collectSchemaRefs(s.Not, seen)
	collectSchemaRefs(s.If, seen)
	collectSchemaRefs(s.Then, seen)
	collectSchemaRefs(s.Else, seen)

	for _, name := range sortedKeys(s.DependentSchemas) {
		collectSchemaRefs(s.DependentSchemas[name], seen)
	}
	for _, name := range sortedKeys(s.Defs) {
		collectSchemaRefs(s.Defs[name], seen)
	}
}

// refKey normalizes a $ref string to the bare component name when it is a
// local reference, and leaves it untouched otherwise so unresolved/external
// references remain distinguishable in the resulting dependency set.
func refKey(ref string) string {
	if IsLocalComponentRef(ref) {
		return ExtractRefName(ref)
	}
	return ref
}

// asSchema narrows the any-typed polymorphic schema fields (which may hold a
// *parser.Schema, a bool, or nil) down to a *parser.Schema, returning nil for
// anything else.
func asSchema(v any) *parser.Schema {
	s, _ := v.(*parser.Schema)
	return s
}

// sortedKeys returns the keys of a string-keyed map in sorted order, giving
// deterministic traversal order over otherwise-unordered Go maps.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
