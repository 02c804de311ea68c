// Package normalize converts a parsed OpenAPI/Swagger document into the
// store's stable entity shapes: endpoints, schemas, security schemes, and
// their cross-references, resolving $ref pointers to bare component names
// and detecting schema dependency cycles along the way.
package normalize

import (
	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/store"
)

// Result bundles every normalized entity set produced from one document,
// plus the accumulated warnings from all subcomponents (never errors —
// normalization tolerates broken references per spec fallback policy and
// surfaces them as warnings instead of aborting).
type Result struct {
	Endpoints       []store.Endpoint
	Schemas         []store.Schema
	SecuritySchemes []store.SecurityScheme
	SchemaGraph     map[string][]string
	Warnings        []string
}

// Document normalizes every entity in a parsed document. The schema
// normalizer runs first since endpoint normalization depends on its
// dependency graph.
func Document(result *parser.ParseResult) (*Result, error) {
	accessor := result.AsAccessor()
	if accessor == nil {
		return nil, &UnsupportedDocumentError{}
	}

	schemaResult, err := Schemas(accessor)
	if err != nil {
		return nil, err
	}

	securityResult, err := Security(accessor)
	if err != nil {
		return nil, err
	}
	schemeByName := make(map[string]store.SecurityScheme, len(securityResult.Schemes))
	for _, s := range securityResult.Schemes {
		schemeByName[s.Name] = s
	}

	endpointResult, err := Endpoints(accessor, schemaResult.Graph)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Endpoints:       endpointResult.Endpoints,
		Schemas:         schemaResult.Schemas,
		SecuritySchemes: securityResult.Schemes,
		SchemaGraph:     schemaResult.Graph,
	}
	out.Warnings = append(out.Warnings, schemaResult.Warnings...)
	out.Warnings = append(out.Warnings, securityResult.Warnings...)
	out.Warnings = append(out.Warnings, endpointResult.Warnings...)
	out.Warnings = append(out.Warnings, crossCheckReferences(out, schemeByName)...)

	return out, nil
}

// crossCheckReferences validates that every schema/security reference an
// endpoint or schema declares resolves to a defined entity, and that every
// security requirement's scopes are declared on their scheme.
func crossCheckReferences(r *Result, schemes map[string]store.SecurityScheme) []string {
	var warnings []string

	schemaNames := make(map[string]struct{}, len(r.Schemas))
	for _, s := range r.Schemas {
		schemaNames[s.Name] = struct{}{}
	}

	for _, e := range r.Endpoints {
		for _, dep := range e.SchemaDependencies {
			if _, ok := schemaNames[dep]; !ok {
				warnings = append(warnings, "endpoint "+e.Method+" "+e.PathTemplate+": undefined schema dependency "+dep)
			}
		}
		for _, sec := range e.Security {
			scheme, ok := schemes[sec.SchemeID]
			if !ok {
				warnings = append(warnings, "endpoint "+e.Method+" "+e.PathTemplate+": undefined security scheme "+sec.SchemeID)
				continue
			}
			warnings = append(warnings, ValidateScopes(sec.SchemeID, sec.Scopes, scheme)...)
		}
	}

	for _, s := range r.Schemas {
		for _, dep := range s.SchemaDependencies {
			if dep == "<inline>" {
				continue
			}
			if _, ok := schemaNames[dep]; !ok {
				warnings = append(warnings, "schema "+s.Name+": undefined dependency "+dep)
			}
		}
	}

	return warnings
}

// UnsupportedDocumentError indicates the parsed document could not be adapted
// to the version-agnostic accessor interface normalization requires.
type UnsupportedDocumentError struct{}

func (e *UnsupportedDocumentError) Error() string {
	return "normalize: document does not implement a supported OpenAPI/Swagger accessor"
}
