package categorize

import (
	"sort"
	"sync"

	"github.com/erraggy/oaskb/store"
)

// Catalog aggregates categories observed across all endpoints of one
// ingestion, tracking endpoint counts and the set of HTTP methods seen per
// category. Safe for concurrent use: Add must be safe
// under concurrent ingestion.
type Catalog struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	category store.CategoryCatalogEntry
	methods  map[string]struct{}
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*entry)}
}

// Add records one endpoint's resolved category and method, creating the
// catalog entry on first sight.
func (c *Catalog) Add(cat Category, group string, method string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cat.Name]
	if !ok {
		e = &entry{
			category: store.CategoryCatalogEntry{
				CategoryName:  cat.Name,
				DisplayName:   cat.DisplayName,
				CategoryGroup: group,
			},
			methods: make(map[string]struct{}),
		}
		c.entries[cat.Name] = e
	}
	e.category.EndpointCount++
	e.methods[method] = struct{}{}
}

// SortBy selects the ordering Entries returns results in.
type SortBy int

const (
	SortByName SortBy = iota
	SortByEndpointCount
	SortByGroup
)

// Filter narrows the catalog listing by group and whether to include
// categories with zero endpoints (always false today since Add is the only
// way entries are created, but kept for API symmetry with the catalog's
// `getCategories(filter: group?, includeEmpty, sortBy)`).
type Filter struct {
	Group        string
	IncludeEmpty bool
	SortBy       SortBy
}

// Entries returns a snapshot of the catalog filtered and sorted per filter.
func (c *Catalog) Entries(filter Filter) []store.CategoryCatalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]store.CategoryCatalogEntry, 0, len(c.entries))
	for _, name := range sortedEntryKeys(c.entries) {
		e := c.entries[name]
		if filter.Group != "" && e.category.CategoryGroup != filter.Group {
			continue
		}
		if !filter.IncludeEmpty && e.category.EndpointCount == 0 {
			continue
		}
		row := e.category
		row.HTTPMethods = sortedMethodSet(e.methods)
		out = append(out, row)
	}

	switch filter.SortBy {
	case SortByEndpointCount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].EndpointCount > out[j].EndpointCount })
	case SortByGroup:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CategoryGroup < out[j].CategoryGroup })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	}
	return out
}

func sortedEntryKeys(m map[string]*entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMethodSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
