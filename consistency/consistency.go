// Package consistency runs cross-entity invariant checks over a normalized
// document: dangling references, path-parameter synchronization, schema
// usage, naming-convention drift, and HTTP-method collection patterns.
package consistency

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaskb/internal/issues"
	"github.com/erraggy/oaskb/internal/naming"
	"github.com/erraggy/oaskb/internal/severity"
	"github.com/erraggy/oaskb/store"
)

// maxHealthyDependencies is the dependency-count threshold past which a
// schema is flagged as "overly coupled".
const maxHealthyDependencies = 5

// namingThreshold is how many endpoints may deviate from the dominant naming
// convention before a naming-consistency warning is raised.
const namingThreshold = 2

// Report is the result of checking one normalized document.
type Report struct {
	Errors   []issues.Issue
	Warnings []issues.Issue
}

// Score computes the consistency score: 100 minus a weighted penalty for
// errors and warnings, normalized by entity count and clamped to [0, 100].
func (r Report) Score(endpointCount, schemaCount int) float64 {
	total := endpointCount + schemaCount
	if total == 0 {
		return 100
	}
	penalty := (2*float64(len(r.Errors)) + 0.5*float64(len(r.Warnings))) / (2 * float64(total)) * 100
	score := 100 - penalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Check runs every consistency rule over the normalized entity sets of one
// document.
func Check(endpoints []store.Endpoint, schemas []store.Schema, schemes []store.SecurityScheme) Report {
	var r Report

	schemaNames := make(map[string]store.Schema, len(schemas))
	for _, s := range schemas {
		schemaNames[s.Name] = s
	}
	schemeNames := make(map[string]store.SecurityScheme, len(schemes))
	for _, s := range schemes {
		schemeNames[s.Name] = s
	}

	checkReferences(&r, endpoints, schemas, schemaNames, schemeNames)
	checkPathParameterSync(&r, endpoints)
	checkSchemaUsage(&r, endpoints, schemas)
	checkNaming(&r, endpoints, schemas)
	checkHTTPMethodPatterns(&r, endpoints)

	return r
}

func checkReferences(r *Report, endpoints []store.Endpoint, schemas []store.Schema, schemaNames map[string]store.Schema, schemeNames map[string]store.SecurityScheme) {
	for _, e := range endpoints {
		for _, dep := range e.SchemaDependencies {
			if _, ok := schemaNames[dep]; !ok {
				r.Errors = append(r.Errors, issues.Issue{
					Path:    fmt.Sprintf("paths.%s.%s", e.PathTemplate, strings.ToLower(e.Method)),
					Message: fmt.Sprintf("references undefined schema %q", dep),
					Severity: severity.SeverityError,
				})
			}
		}
		for _, sec := range e.Security {
			if _, ok := schemeNames[sec.SchemeID]; !ok {
				r.Errors = append(r.Errors, issues.Issue{
					Path:    fmt.Sprintf("paths.%s.%s", e.PathTemplate, strings.ToLower(e.Method)),
					Message: fmt.Sprintf("references undefined security scheme %q", sec.SchemeID),
					Severity: severity.SeverityError,
				})
			}
		}
	}
	for _, s := range schemas {
		for _, dep := range s.SchemaDependencies {
			if dep == "<inline>" {
				continue
			}
			if _, ok := schemaNames[dep]; !ok {
				r.Errors = append(r.Errors, issues.Issue{
					Path:    fmt.Sprintf("components.schemas.%s", s.Name),
					Message: fmt.Sprintf("references undefined schema %q", dep),
					Severity: severity.SeverityError,
				})
			}
		}
	}
}

// checkPathParameterSync verifies that, for every path template, the set of
// {placeholder} names matches the set of in=path parameters across all
// methods declared on that path, and flags cross-method type/format
// conflicts as warnings.
func checkPathParameterSync(r *Report, endpoints []store.Endpoint) {
	type paramShape struct {
		schemaType string
		format     string
	}
	byPath := make(map[string][]store.Endpoint)
	for _, e := range endpoints {
		byPath[e.PathTemplate] = append(byPath[e.PathTemplate], e)
	}

	for _, path := range sortedPathKeys(byPath) {
		group := byPath[path]
		placeholders := extractPlaceholders(path)
		shapes := make(map[string]paramShape)
		seen := make(map[string]bool)

		for _, e := range group {
			for _, p := range e.Parameters {
				if p.In != "path" {
					continue
				}
				seen[p.Name] = true
				shape := paramShape{schemaType: p.SchemaType, format: p.Format}
				if prior, ok := shapes[p.Name]; ok && prior != shape {
					r.Warnings = append(r.Warnings, issues.Issue{
						Path:     fmt.Sprintf("paths.%s", path),
						Message:  fmt.Sprintf("path parameter %q has conflicting type/format across methods", p.Name),
						Severity: severity.SeverityWarning,
					})
				}
				shapes[p.Name] = shape
			}
		}

		for name := range placeholders {
			if !seen[name] {
				r.Errors = append(r.Errors, issues.Issue{
					Path:     fmt.Sprintf("paths.%s", path),
					Message:  fmt.Sprintf("placeholder {%s} has no matching path parameter", name),
					Severity: severity.SeverityError,
				})
			}
		}
		for name := range seen {
			if !placeholders[name] {
				r.Errors = append(r.Errors, issues.Issue{
					Path:     fmt.Sprintf("paths.%s", path),
					Message:  fmt.Sprintf("path parameter %q has no matching placeholder", name),
					Severity: severity.SeverityError,
				})
			}
		}
	}
}

func checkSchemaUsage(r *Report, endpoints []store.Endpoint, schemas []store.Schema) {
	used := make(map[string]bool)
	for _, e := range endpoints {
		for _, dep := range e.SchemaDependencies {
			used[dep] = true
		}
	}
	for _, s := range schemas {
		for _, dep := range s.SchemaDependencies {
			used[dep] = true
		}
	}

	for _, s := range schemas {
		if !used[s.Name] {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     fmt.Sprintf("components.schemas.%s", s.Name),
				Message:  "schema is not referenced by any endpoint or schema",
				Severity: severity.SeverityWarning,
			})
		}
		if isPrimitiveTypeName(s.Name) {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     fmt.Sprintf("components.schemas.%s", s.Name),
				Message:  fmt.Sprintf("schema name %q shadows a primitive type", s.Name),
				Severity: severity.SeverityWarning,
			})
		}
		if len(s.SchemaDependencies) > maxHealthyDependencies {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     fmt.Sprintf("components.schemas.%s", s.Name),
				Message:  fmt.Sprintf("schema has %d dependencies, overly coupled", len(s.SchemaDependencies)),
				Severity: severity.SeverityWarning,
			})
		}
	}
}

var primitiveTypeNames = map[string]bool{
	"string": true, "number": true, "integer": true, "boolean": true,
	"object": true, "array": true, "null": true,
}

func isPrimitiveTypeName(name string) bool {
	return primitiveTypeNames[strings.ToLower(name)]
}

// checkNaming flags a mix of case conventions across endpoint operationIds
// and schema names beyond namingThreshold occurrences of any non-dominant
// convention.
func checkNaming(r *Report, endpoints []store.Endpoint, schemas []store.Schema) {
	counts := make(map[string]int)
	for _, e := range endpoints {
		if e.OperationID != "" {
			counts[naming.DetectConvention(e.OperationID)]++
		}
	}
	for _, s := range schemas {
		counts[naming.DetectConvention(s.Name)]++
	}
	delete(counts, "")

	if len(counts) <= 1 {
		return
	}
	dominant, dominantCount := "", 0
	for conv, n := range counts {
		if n > dominantCount {
			dominant, dominantCount = conv, n
		}
	}
	for conv, n := range counts {
		if conv == dominant {
			continue
		}
		if n > namingThreshold {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     "naming",
				Message:  fmt.Sprintf("%d identifiers use %s while %s dominates (%d)", n, conv, dominant, dominantCount),
				Severity: severity.SeverityWarning,
			})
		}
	}
}

func checkHTTPMethodPatterns(r *Report, endpoints []store.Endpoint) {
	byPath := make(map[string]map[string]bool)
	for _, e := range endpoints {
		if byPath[e.PathTemplate] == nil {
			byPath[e.PathTemplate] = make(map[string]bool)
		}
		byPath[e.PathTemplate][e.Method] = true
	}
	for _, path := range sortedPathKeys2(byPath) {
		methods := byPath[path]
		if methods["POST"] && !methods["GET"] {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     fmt.Sprintf("paths.%s", path),
				Message:  "collection path has POST but no GET",
				Severity: severity.SeverityWarning,
			})
		}
		if methods["DELETE"] && !methods["GET"] {
			r.Warnings = append(r.Warnings, issues.Issue{
				Path:     fmt.Sprintf("paths.%s", path),
				Message:  "path has DELETE but no GET",
				Severity: severity.SeverityWarning,
			})
		}
	}
}

func extractPlaceholders(pathTemplate string) map[string]bool {
	out := make(map[string]bool)
	var cur strings.Builder
	inBrace := false
	for _, r := range pathTemplate {
		switch r {
		case '{':
			inBrace = true
			cur.Reset()
		case '}':
			if inBrace {
				out[cur.String()] = true
				inBrace = false
			}
		default:
			if inBrace {
				cur.WriteRune(r)
			}
		}
	}
	return out
}

func sortedPathKeys(m map[string][]store.Endpoint) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortedPathKeys2(m map[string]map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
}
