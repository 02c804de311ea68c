package mcpsrv

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaskb/oaserrors"
	"github.com/erraggy/oaskb/store"
)

type getEndpointCategoriesInput struct {
	CategoryGroup string `json:"categoryGroup,omitempty" jsonschema:"Restrict to one category group"`
	IncludeEmpty  bool   `json:"includeEmpty,omitempty" jsonschema:"Include categories with zero endpoints, default false"`
	SortBy        string `json:"sortBy,omitempty" jsonschema:"enum=name,enum=endpointCount,enum=group, default name"`
}

type categoryView struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name,omitempty"`
	Description   string   `json:"description,omitempty"`
	CategoryGroup string   `json:"category_group,omitempty"`
	EndpointCount int      `json:"endpoint_count"`
	HTTPMethods   []string `json:"http_methods,omitempty"`
}

type categoriesMetadata struct {
	TotalCategories int    `json:"totalCategories"`
	TotalEndpoints  int    `json:"totalEndpoints"`
	TotalGroups     int    `json:"totalGroups"`
	APITitle        string `json:"apiTitle"`
	APIVersion      string `json:"apiVersion"`
}

type getEndpointCategoriesOutput struct {
	Categories []categoryView     `json:"categories"`
	Groups     []string           `json:"groups"`
	Metadata   categoriesMetadata `json:"metadata"`
}

func (sc *ServerContext) handleGetEndpointCategories(ctx context.Context, _ *mcp.CallToolRequest, input getEndpointCategoriesInput) (*mcp.CallToolResult, getEndpointCategoriesOutput, error) {
	sortBy, err := validateSortBy(input.SortBy)
	if err != nil {
		return errResult(err), getEndpointCategoriesOutput{}, nil
	}
	categoryGroup, err := trimmedOrEmpty("categoryGroup", input.CategoryGroup)
	if err != nil {
		return errResult(err), getEndpointCategoriesOutput{}, nil
	}

	out, err := runWithMiddleware(ctx, sc, MethodGetEndpointCategories, func(ctx context.Context) (getEndpointCategoriesOutput, error) {
		return getEndpointCategories(ctx, sc, categoryGroup, input.IncludeEmpty, sortBy)
	})
	if err != nil {
		return errResult(err), getEndpointCategoriesOutput{}, nil
	}
	return nil, out, nil
}

func getEndpointCategories(ctx context.Context, sc *ServerContext, categoryGroup string, includeEmpty bool, sortBy string) (getEndpointCategoriesOutput, error) {
	api, err := sc.currentAPI(ctx)
	if err != nil {
		return getEndpointCategoriesOutput{}, err
	}

	entries, err := sc.Endpoints.GetCategories(ctx, api.ID, categoryGroup)
	if err != nil {
		var repoErr *oaserrors.RepositoryError
		if errors.As(err, &repoErr) && strings.Contains(repoErr.Error(), "no such table") {
			return getEndpointCategoriesOutput{}, &oaserrors.DatabaseConnectionError{
				Operation: "get_categories",
				Cause:     errors.New("category_catalog table missing; run migrations"),
			}
		}
		return getEndpointCategoriesOutput{}, err
	}
	groups, err := sc.Endpoints.GetCategoryGroups(ctx, api.ID)
	if err != nil {
		return getEndpointCategoriesOutput{}, err
	}

	filtered := make([]store.CategoryCatalogEntry, 0, len(entries))
	totalEndpoints := 0
	for _, e := range entries {
		if !includeEmpty && e.EndpointCount == 0 {
			continue
		}
		filtered = append(filtered, e)
		totalEndpoints += e.EndpointCount
	}

	sortCategories(filtered, sortBy)

	views := make([]categoryView, 0, len(filtered))
	for _, e := range filtered {
		views = append(views, categoryView{
			Name:          e.CategoryName,
			DisplayName:   e.DisplayName,
			Description:   e.Description,
			CategoryGroup: e.CategoryGroup,
			EndpointCount: e.EndpointCount,
			HTTPMethods:   e.HTTPMethods,
		})
	}

	return getEndpointCategoriesOutput{
		Categories: views,
		Groups:     groups,
		Metadata: categoriesMetadata{
			TotalCategories: len(views),
			TotalEndpoints:  totalEndpoints,
			TotalGroups:     len(groups),
			APITitle:        api.Title,
			APIVersion:      api.Version,
		},
	}, nil
}

func sortCategories(entries []store.CategoryCatalogEntry, sortBy string) {
	switch sortBy {
	case "endpointCount":
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].EndpointCount != entries[j].EndpointCount {
				return entries[i].EndpointCount > entries[j].EndpointCount
			}
			return entries[i].CategoryName < entries[j].CategoryName
		})
	case "group":
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].CategoryGroup != entries[j].CategoryGroup {
				return entries[i].CategoryGroup < entries[j].CategoryGroup
			}
			return entries[i].CategoryName < entries[j].CategoryName
		})
	default: // name
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].CategoryName < entries[j].CategoryName })
	}
}
