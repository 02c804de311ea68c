package mcpsrv

import (
	"context"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaskb/query"
	"github.com/erraggy/oaskb/searchindex"
)

type searchEndpointsInput struct {
	Keywords      string   `json:"keywords" jsonschema:"Search terms to match against endpoint path, summary, description, and tags"`
	HTTPMethods   []string `json:"httpMethods,omitempty" jsonschema:"Restrict results to these HTTP methods"`
	Category      string   `json:"category,omitempty" jsonschema:"Restrict results to this category"`
	CategoryGroup string   `json:"categoryGroup,omitempty" jsonschema:"Restrict results to this category group"`
	Page          int      `json:"page,omitempty" jsonschema:"1-indexed page number, default 1"`
	PerPage       int      `json:"perPage,omitempty" jsonschema:"Results per page (1-50), default 20"`
}

type endpointSummary struct {
	EndpointID    int64    `json:"endpoint_id"`
	Path          string   `json:"path"`
	Method        string   `json:"method"`
	OperationID   string   `json:"operation_id,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Category      string   `json:"category,omitempty"`
	CategoryGroup string   `json:"category_group,omitempty"`
	Deprecated    bool     `json:"deprecated"`
	Score         float64  `json:"score"`
}

type pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
	HasPrevious bool `json:"has_previous"`
}

type searchMetadata struct {
	Keywords            string   `json:"keywords"`
	HTTPMethodsFilter    []string `json:"http_methods_filter,omitempty"`
	CategoryFilter       *string  `json:"category_filter"`
	CategoryGroupFilter  *string  `json:"category_group_filter"`
	ResultCount          int      `json:"result_count"`
	SearchTimeMS         float64  `json:"search_time_ms"`
}

type searchEndpointsOutput struct {
	Results        []endpointSummary `json:"results"`
	Pagination     pagination        `json:"pagination"`
	SearchMetadata searchMetadata    `json:"search_metadata"`
}

// handleSearchEndpoints is bound to a *ServerContext at registration time
// (see RegisterTools), giving mcp.AddTool a plain method value with the
// handler signature it expects.
func (sc *ServerContext) handleSearchEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input searchEndpointsInput) (*mcp.CallToolResult, searchEndpointsOutput, error) {
	if err := validateKeywords(input.Keywords); err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	if err := validateHTTPMethods(input.HTTPMethods); err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	category, err := trimmedOrEmpty("category", input.Category)
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	categoryGroup, err := trimmedOrEmpty("categoryGroup", input.CategoryGroup)
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	page, err := validatePage(input.Page)
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	perPage, err := validatePerPage(input.PerPage)
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}

	out, err := runWithMiddleware(ctx, sc, MethodSearchEndpoints, func(ctx context.Context) (searchEndpointsOutput, error) {
		return searchEndpoints(ctx, sc, input.Keywords, input.HTTPMethods, category, categoryGroup, page, perPage)
	})
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}
	return nil, out, nil
}

func searchEndpoints(ctx context.Context, sc *ServerContext, keywords string, httpMethods []string, category, categoryGroup string, page, perPage int) (searchEndpointsOutput, error) {
	start := time.Now()

	api, err := sc.currentAPI(ctx)
	if err != nil {
		return searchEndpointsOutput{}, err
	}

	// NewRanker needs the full corpus to compute its per-field IDF/average-
	// length stats, independent of which endpoints the query below actually
	// matches.
	corpus := filterDocsByAPI(sc.Index.All(), api.ID)
	pq := query.Process(keywords)
	ranker := query.NewRanker(corpus)

	// Recall comes from the FTS5-backed repository query (MATCH against
	// endpoints_fts, ANDed with the method/category/category-group equality
	// filters) rather than scanning every indexed document in memory.
	matched, err := sc.Endpoints.SearchEndpoints(ctx, api.ID, keywords, httpMethods, category, categoryGroup, 0, 0)
	if err != nil {
		return searchEndpointsOutput{}, err
	}

	type scored struct {
		doc   searchindex.Document
		score float64
	}
	results := make([]scored, 0, len(matched))
	for _, e := range matched {
		d, ok := sc.Index.Get(e.ID)
		if !ok {
			continue
		}
		score := ranker.Score(pq, d)
		if score <= 0 {
			continue
		}
		results = append(results, scored{doc: d, score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].doc.Path < results[j].doc.Path
	})

	total := len(results)
	totalPages := (total + perPage - 1) / perPage
	offset := (page - 1) * perPage
	var page2 []scored
	if offset < total {
		end := offset + perPage
		if end > total {
			end = total
		}
		page2 = results[offset:end]
	}

	out := make([]endpointSummary, 0, len(page2))
	for _, r := range page2 {
		out = append(out, endpointSummary{
			EndpointID:    r.doc.EndpointID,
			Path:          r.doc.Path,
			Method:        r.doc.Method,
			OperationID:   r.doc.OperationID,
			Summary:       r.doc.Summary,
			Description:   r.doc.Description,
			Tags:          r.doc.Tags,
			Category:      r.doc.Category,
			CategoryGroup: r.doc.CategoryGroup,
			Deprecated:    r.doc.Deprecated,
			Score:         r.score,
		})
	}

	var categoryFilter, categoryGroupFilter *string
	if category != "" {
		categoryFilter = &category
	}
	if categoryGroup != "" {
		categoryGroupFilter = &categoryGroup
	}

	return searchEndpointsOutput{
		Results: out,
		Pagination: pagination{
			Total:       total,
			Page:        page,
			PerPage:     perPage,
			TotalPages:  totalPages,
			HasMore:     offset+perPage < total,
			HasPrevious: page > 1,
		},
		SearchMetadata: searchMetadata{
			Keywords:            keywords,
			HTTPMethodsFilter:   httpMethods,
			CategoryFilter:      categoryFilter,
			CategoryGroupFilter: categoryGroupFilter,
			ResultCount:         total,
			SearchTimeMS:        float64(time.Since(start).Microseconds()) / 1000.0,
		},
	}, nil
}

func filterDocsByAPI(docs []searchindex.Document, apiID int64) []searchindex.Document {
	out := make([]searchindex.Document, 0, len(docs))
	for _, d := range docs {
		if d.APIID == apiID {
			out = append(out, d)
		}
	}
	return out
}
