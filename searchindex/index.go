package searchindex

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/erraggy/oaskb/repository"
	"github.com/erraggy/oaskb/store"
)

// Document is one endpoint's structured search record: every field
// endpoints_fts cannot index directly, plus the same searchable_text it
// already maintains, so query.Ranker can score a field it actually has
// access to instead of re-deriving it from a raw store.Endpoint each time.
type Document struct {
	EndpointID      int64
	APIID           int64
	Path            string
	Method          string
	Summary         string
	Description     string
	OperationID     string
	PathSegments    []string
	ResourceName    string
	OperationType   string // read/list/create/update/delete/other

	RequiredParamNames []string
	OptionalParamNames []string
	PathParamNames     []string
	QueryParamNames    []string
	HeaderParamNames   []string

	RequestBodyContentTypes []string
	ResponseStatusCodes     []string
	ResponseSchemas         []string
	ResponseContentTypes    []string

	SecuritySchemes []string
	SecurityScopes  []string

	Tags            []string
	Category        string
	CategoryGroup   string
	Deprecated      bool
	HasExamples     bool
	HasRequestBody  bool
	ExternalDocsURL string

	SearchableText string
	Keywords       []string
}

// Index holds one in-memory Document per ingested endpoint, rebuilt from
// repository.EndpointRepository rather than kept transactional with it.
type Index struct {
	mu        sync.RWMutex
	byID      map[int64]Document
	endpoints *repository.EndpointRepository

	// BatchSize bounds how many endpoint rows CreateFromStore reads per
	// page. Zero means the default of 200.
	BatchSize int
}

// New constructs an empty Index backed by endpoints.
func New(endpoints *repository.EndpointRepository) *Index {
	return &Index{byID: make(map[int64]Document), endpoints: endpoints}
}

func (idx *Index) batchSize() int {
	if idx.BatchSize > 0 {
		return idx.BatchSize
	}
	return 200
}

// CreateFromStore drains every endpoint of apiID from the store in batches,
// replacing whatever documents this Index previously held for that API.
func (idx *Index) CreateFromStore(ctx context.Context, apiID int64) error {
	batch := idx.batchSize()
	fresh := make(map[int64]Document)

	for offset := 0; ; offset += batch {
		rows, err := idx.endpoints.List(ctx, repository.ListOptions{
			Filters: []repository.Filter{{Field: "api_id", Value: apiID}},
			OrderBy: "id",
			Limit:   batch,
			Offset:  offset,
		})
		if err != nil {
			return fmt.Errorf("searchindex: create_from_store: %w", err)
		}
		for _, e := range rows {
			fresh[e.ID] = buildDocument(e)
		}
		if len(rows) < batch {
			break
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, doc := range idx.byID {
		if doc.APIID == apiID {
			delete(idx.byID, id)
		}
	}
	for id, doc := range fresh {
		idx.byID[id] = doc
	}
	return nil
}

// UpdateDocument re-fetches one endpoint and replaces its document; if the
// endpoint no longer exists in the store, its document is removed instead.
// Idempotent either way.
func (idx *Index) UpdateDocument(ctx context.Context, endpointID int64) error {
	e, err := idx.endpoints.GetByID(ctx, endpointID)
	if err != nil {
		idx.RemoveDocument(endpointID)
		return nil
	}
	doc := buildDocument(e)
	idx.mu.Lock()
	idx.byID[endpointID] = doc
	idx.mu.Unlock()
	return nil
}

// RemoveDocument deletes the document for endpointID, if any.
func (idx *Index) RemoveDocument(endpointID int64) {
	idx.mu.Lock()
	delete(idx.byID, endpointID)
	idx.mu.Unlock()
}

// Get returns the document for one endpoint, if indexed.
func (idx *Index) Get(endpointID int64) (Document, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	d, ok := idx.byID[endpointID]
	return d, ok
}

// All returns every indexed document, ordered by endpoint id.
func (idx *Index) All() []Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]Document, 0, len(idx.byID))
	for _, d := range idx.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndpointID < out[j].EndpointID })
	return out
}

// IntegrityReport is the result of ValidateIntegrity.
type IntegrityReport struct {
	IndexedCount     int
	StoreCount       int
	MissingRequired  []int64 // endpoint ids indexed with a blank required field
	InSync           bool
}

// ValidateIntegrity compares the indexed document count for apiID against
// the store's endpoint count, and checks that every indexed document of
// that API carries its required fields.
func (idx *Index) ValidateIntegrity(ctx context.Context, apiID int64) (*IntegrityReport, error) {
	storeCount, err := idx.endpoints.Count(ctx, []repository.Filter{{Field: "api_id", Value: apiID}})
	if err != nil {
		return nil, fmt.Errorf("searchindex: validate_integrity: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	report := &IntegrityReport{StoreCount: storeCount}
	for id, doc := range idx.byID {
		if doc.APIID != apiID {
			continue
		}
		report.IndexedCount++
		if doc.Path == "" || doc.Method == "" {
			report.MissingRequired = append(report.MissingRequired, id)
		}
	}
	report.InSync = report.IndexedCount == report.StoreCount && len(report.MissingRequired) == 0
	return report, nil
}

func buildDocument(e store.Endpoint) Document {
	d := Document{
		EndpointID:      e.ID,
		APIID:           e.APIID,
		Path:            e.PathTemplate,
		Method:          e.Method,
		Summary:         e.Summary,
		Description:     e.Description,
		OperationID:     e.OperationID,
		PathSegments:    pathSegments(e.PathTemplate),
		OperationType:   classifyOperationType(e.Method, e.PathTemplate),
		Tags:            e.Tags,
		Category:        e.Category,
		CategoryGroup:   e.CategoryGroup,
		Deprecated:      e.Deprecated,
		HasRequestBody:  e.RequestBodyRef != "",
		SearchableText:  e.SearchableText,
		Keywords:        extractKeywords(e.SearchableText),
	}
	d.ResourceName = resourceName(d.PathSegments)

	for _, p := range e.Parameters {
		if p.Required {
			d.RequiredParamNames = append(d.RequiredParamNames, p.Name)
		} else {
			d.OptionalParamNames = append(d.OptionalParamNames, p.Name)
		}
		switch p.In {
		case "path":
			d.PathParamNames = append(d.PathParamNames, p.Name)
		case "query":
			d.QueryParamNames = append(d.QueryParamNames, p.Name)
		case "header":
			d.HeaderParamNames = append(d.HeaderParamNames, p.Name)
		}
		if p.Example != nil {
			d.HasExamples = true
		}
	}

	codes := make([]string, 0, len(e.Responses))
	for code := range e.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		resp := e.Responses[code]
		d.ResponseStatusCodes = append(d.ResponseStatusCodes, code)
		if resp.SchemaRef != "" {
			d.ResponseSchemas = append(d.ResponseSchemas, resp.SchemaRef)
		}
		if resp.ContentType != "" {
			d.ResponseContentTypes = append(d.ResponseContentTypes, resp.ContentType)
		}
	}

	for _, alt := range e.Security {
		d.SecuritySchemes = append(d.SecuritySchemes, alt.SchemeID)
		d.SecurityScopes = append(d.SecurityScopes, alt.Scopes...)
	}

	if v, ok := e.Extensions["externalDocs"].(map[string]any); ok {
		if url, ok := v["url"].(string); ok {
			d.ExternalDocsURL = url
		}
	}

	return d
}

// classifyOperationType maps an endpoint's method (and, for GET, whether
// its path ends on a collection or a single-resource path parameter) onto
// the read/list/create/update/delete/other vocabulary.
func classifyOperationType(method, path string) string {
	switch strings.ToUpper(method) {
	case "GET", "HEAD":
		if strings.HasSuffix(strings.TrimRight(path, "/"), "}") {
			return "read"
		}
		return "list"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	default:
		return "other"
	}
}

func pathSegments(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// resourceName picks the last non-parameter path segment, the conventional
// "what this endpoint is about" name (e.g. "/pets/{id}" -> "pets").
func resourceName(segments []string) string {
	for i := len(segments) - 1; i >= 0; i-- {
		if !strings.HasPrefix(segments[i], "{") {
			return segments[i]
		}
	}
	return ""
}

func extractKeywords(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Fields(strings.ToLower(text))
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
