package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oaskb/internal/httputil"
	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/store"
)

// EndpointResult is the output of normalizing a document's paths into
// per-(path, method) endpoint rows.
type EndpointResult struct {
	Endpoints []store.Endpoint
	Warnings  []string
}

// paramKey identifies a parameter by the (name, location) pair the spec uses
// to decide whether an operation-level parameter overrides a path-level one.
type paramKey struct {
	name string
	in   string
}

// Endpoints walks every path and method in a document, merging path- and
// operation-level parameters, defaulting security from the document root,
// and computing each endpoint's transitive schema and security dependencies.
//
// schemaGraph is the dependency graph already computed by Schemas, used to
// expand a directly-referenced schema into its full transitive set.
func Endpoints(accessor parser.DocumentAccessor, schemaGraph map[string][]string) (*EndpointResult, error) {
	closure := TransitiveClosure(schemaGraph)
	paths := accessor.GetPaths()
	globalSecurity := accessor.GetSecurity()
	isOAS2 := accessor.GetVersion() == parser.OASVersion20

	var warnings []string
	var endpoints []store.Endpoint

	for _, pathTemplate := range sortedPathKeys(paths) {
		item := paths[pathTemplate]
		if item == nil {
			continue
		}
		var ops map[string]*parser.Operation
		if isOAS2 {
			ops = parser.GetOAS2Operations(item)
		} else {
			ops = parser.GetOAS3Operations(item)
		}

		for _, method := range sortedMethodKeys(ops) {
			op := ops[method]
			if op == nil {
				continue
			}

			params := mergeParameters(item.Parameters, op.Parameters)
			security := op.Security
			if security == nil {
				security = globalSecurity
			}

			schemaDeps := make(map[string]struct{})
			for _, p := range params {
				if p.Ref != "" {
					addWithClosure(schemaDeps, refKey(p.Ref), closure)
				}
				if p.Schema != nil {
					collectSchemaRefs(p.Schema, schemaDeps)
				}
			}
			if op.RequestBody != nil {
				for _, mt := range sortedMediaTypes(op.RequestBody.Content) {
					collectSchemaRefs(mt.Schema, schemaDeps)
				}
			}
			responses := make(map[string]store.Response)
			if op.Responses != nil {
				if op.Responses.Default != nil {
					responses["default"] = responseToStore(op.Responses.Default, schemaDeps, closure)
				}
				for _, code := range sortedKeys(op.Responses.Codes) {
					responses[code] = responseToStore(op.Responses.Codes[code], schemaDeps, closure)
				}
			}
			expandClosure(schemaDeps, closure)

			securityDeps := make(map[string]struct{})
			alternatives := make([]store.SecurityRequirementAlternative, 0, len(security))
			for _, req := range security {
				for _, schemeID := range sortedKeys(req) {
					alternatives = append(alternatives, store.SecurityRequirementAlternative{
						SchemeID: schemeID,
						Scopes:   req[schemeID],
					})
					securityDeps[schemeID] = struct{}{}
				}
			}

			endpoint := store.Endpoint{
				PathTemplate:          pathTemplate,
				Method:                strings.ToUpper(method),
				OperationID:           op.OperationID,
				Summary:               op.Summary,
				Description:           op.Description,
				Tags:                  append([]string(nil), op.Tags...),
				Parameters:            params,
				Responses:             responses,
				Security:              alternatives,
				Deprecated:            op.Deprecated,
				Extensions:            extractExtensions(op.Extra),
				SchemaDependencies:    setToSortedSlice(schemaDeps),
				SecurityDependencies:  setToSortedSlice(securityDeps),
			}
			if op.RequestBody != nil {
				if ref := firstSchemaRef(op.RequestBody.Content); ref != "" {
					endpoint.RequestBodyRef = ref
				}
			}
			endpoint.SearchableText = buildEndpointSearchableText(endpoint)

			if warn := validatePathParameters(pathTemplate, params); warn != "" {
				warnings = append(warnings, warn)
			}

			endpoints = append(endpoints, endpoint)
		}
	}

	return &EndpointResult{Endpoints: endpoints, Warnings: warnings}, nil
}

// mergeParameters combines path-level and operation-level parameters,
// letting an operation-level parameter with the same (name, in) override the
// path-level one, and preserving path-level parameters the operation leaves
// untouched. Order: path-only parameters first (in their original order),
// followed by all operation parameters.
func mergeParameters(pathParams, opParams []*parser.Parameter) []store.Parameter {
	override := make(map[paramKey]struct{}, len(opParams))
	for _, p := range opParams {
		override[paramKey{p.Name, p.In}] = struct{}{}
	}

	merged := make([]store.Parameter, 0, len(pathParams)+len(opParams))
	for _, p := range pathParams {
		if _, overridden := override[paramKey{p.Name, p.In}]; overridden {
			continue
		}
		merged = append(merged, paramToStore(p))
	}
	for _, p := range opParams {
		merged = append(merged, paramToStore(p))
	}
	return merged
}

func paramToStore(p *parser.Parameter) store.Parameter {
	sp := store.Parameter{
		Name:        p.Name,
		In:          p.In,
		Required:    p.Required,
		Description: p.Description,
		Deprecated:  p.Deprecated,
		Example:     p.Example,
		Extensions:  extractExtensions(p.Extra),
	}
	if p.Ref != "" {
		sp.Ref = refKey(p.Ref)
	}
	switch {
	case p.Schema != nil:
		sp.SchemaType = schemaTypeString(p.Schema)
		sp.Format = p.Schema.Format
		sp.Enum = p.Schema.Enum
		sp.Default = p.Schema.Default
		if p.Schema.Ref != "" && sp.Ref == "" {
			sp.Ref = refKey(p.Schema.Ref)
		}
	default:
		sp.SchemaType = p.Type
		sp.Format = p.Format
		sp.Enum = append([]any(nil), p.Enum...)
		sp.Default = p.Default
		if p.Items != nil {
			items := itemsToParam(p.Items)
			sp.Items = &items
		}
	}
	return sp
}

func itemsToParam(i *parser.Items) store.Parameter {
	sp := store.Parameter{
		SchemaType: i.Type,
		Format:     i.Format,
		Enum:       append([]any(nil), i.Enum...),
		Default:    i.Default,
	}
	if i.Items != nil {
		sub := itemsToParam(i.Items)
		sp.Items = &sub
	}
	return sp
}

func responseToStore(r *parser.Response, schemaDeps map[string]struct{}, closure map[string][]string) store.Response {
	resp := store.Response{Description: r.Description}
	if r.Schema != nil {
		collectSchemaRefs(r.Schema, schemaDeps)
		if r.Schema.Ref != "" {
			resp.SchemaRef = refKey(r.Schema.Ref)
		}
		return resp
	}
	for i, ct := range sortedKeys(r.Content) {
		mt := r.Content[ct]
		collectSchemaRefs(mt.Schema, schemaDeps)
		if i > 0 {
			continue // first media type is representative; all are scanned for deps
		}
		resp.ContentType = ct
		if mt.Schema != nil && mt.Schema.Ref != "" {
			resp.SchemaRef = refKey(mt.Schema.Ref)
		}
	}
	return resp
}

func firstSchemaRef(content map[string]*parser.MediaType) string {
	for _, ct := range sortedKeys(content) {
		mt := content[ct]
		if mt.Schema != nil && mt.Schema.Ref != "" {
			return refKey(mt.Schema.Ref)
		}
	}
	return ""
}

func sortedMediaTypes(content map[string]*parser.MediaType) []*parser.MediaType {
	out := make([]*parser.MediaType, 0, len(content))
	for _, ct := range sortedKeys(content) {
		out = append(out, content[ct])
	}
	return out
}

func addWithClosure(set map[string]struct{}, name string, closure map[string][]string) {
	set[name] = struct{}{}
	for _, reached := range closure[name] {
		set[reached] = struct{}{}
	}
}

func expandClosure(set map[string]struct{}, closure map[string][]string) {
	for _, name := range sortedSetKeys(set) {
		for _, reached := range closure[name] {
			set[reached] = struct{}{}
		}
	}
}

func sortedSetKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setToSortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	return sortedSetKeys(set)
}

// validatePathParameters checks the invariant that every {placeholder} in
// pathTemplate has a matching required path parameter, and vice versa.
func validatePathParameters(pathTemplate string, params []store.Parameter) string {
	placeholders := extractPlaceholders(pathTemplate)
	pathParams := make(map[string]bool)
	for _, p := range params {
		if p.In == "path" {
			pathParams[p.Name] = true
			if !p.Required {
				return fmt.Sprintf("path %q: parameter %q is in=path but not required", pathTemplate, p.Name)
			}
		}
	}
	for name := range placeholders {
		if !pathParams[name] {
			return fmt.Sprintf("path %q: placeholder {%s} has no matching path parameter", pathTemplate, name)
		}
	}
	for name := range pathParams {
		if !placeholders[name] {
			return fmt.Sprintf("path %q: parameter %q has no matching {%s} placeholder", pathTemplate, name, name)
		}
	}
	return ""
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

func buildEndpointSearchableText(e store.Endpoint) string {
	var b strings.Builder
	b.WriteString(e.Method)
	b.WriteString(" ")
	b.WriteString(e.PathTemplate)
	if e.OperationID != "" {
		b.WriteString(" ")
		b.WriteString(e.OperationID)
	}
	if e.Summary != "" {
		b.WriteString(" ")
		b.WriteString(e.Summary)
	}
	if e.Description != "" {
		b.WriteString(" ")
		b.WriteString(e.Description)
	}
	for _, tag := range e.Tags {
		b.WriteString(" ")
		b.WriteString(tag)
	}
	return b.String()
}

func sortedPathKeys(paths parser.Paths) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// methodOrder fixes a stable iteration order over the operations map so
// endpoint rows are emitted deterministically regardless of Go's randomized
// map iteration.
var methodOrder = []string{
	httputil.MethodGet, httputil.MethodPut, httputil.MethodPost, httputil.MethodDelete,
	httputil.MethodOptions, httputil.MethodHead, httputil.MethodPatch, httputil.MethodTrace,
}

func sortedMethodKeys(ops map[string]*parser.Operation) []string {
	keys := make([]string, 0, len(ops))
	for _, m := range methodOrder {
		if _, ok := ops[m]; ok {
			keys = append(keys, m)
		}
	}
	return keys
}
