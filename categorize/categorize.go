// Package categorize assigns a category and category group to each endpoint
// using a three-tier hybrid strategy (tag lookup, path
// extraction, fallback), and aggregates the results into a catalog.
package categorize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oaskb/internal/naming"
	"github.com/erraggy/oaskb/parser"
)

// Category is the resolved (category, group, display name) triple for one
// endpoint.
type Category struct {
	Name        string
	DisplayName string
	Group       string
}

// Uncategorized is returned when neither the tag nor the path tier produces
// a usable category.
var Uncategorized = Category{Name: "uncategorized", DisplayName: "Uncategorized"}

// stopSegments are path segments too generic to serve as a category on their
// own (tier 2).
var stopSegments = map[string]bool{
	"users":    true,
	"resource": true,
	"id":       true,
}


// TagIndex holds the document's tag descriptions and tag-group membership,
// built once per document and reused across every endpoint resolution.
type TagIndex struct {
	byName       map[string]*parser.Tag
	groupForTag  map[string]string
}

// BuildTagIndex extracts the spec's `tags[]` array and, for documents that
// declare the `x-tagGroups` vendor extension (OAS3Document/OAS2Document
// root-level extension), the tag -> group mapping it defines.
func BuildTagIndex(accessor parser.DocumentAccessor) *TagIndex {
	idx := &TagIndex{
		byName:      make(map[string]*parser.Tag),
		groupForTag: make(map[string]string),
	}
	for _, tag := range accessor.GetTags() {
		if tag != nil && tag.Name != "" {
			idx.byName[tag.Name] = tag
		}
	}
	for _, group := range extractTagGroups(accessor) {
		for _, tagName := range group.tags {
			idx.groupForTag[tagName] = group.name
		}
	}
	return idx
}

type tagGroup struct {
	name string
	tags []string
}

// extractTagGroups reads the root-level "x-tagGroups" extension, present on
// both OAS2 and OAS3 documents despite being a 3.x-era Redocly convention.
func extractTagGroups(accessor parser.DocumentAccessor) []tagGroup {
	var extra map[string]any
	switch doc := accessor.(type) {
	case *parser.OAS3Document:
		extra = doc.Extra
	case *parser.OAS2Document:
		extra = doc.Extra
	default:
		return nil
	}
	raw, ok := extra["x-tagGroups"].([]any)
	if !ok {
		return nil
	}
	groups := make([]tagGroup, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		var tags []string
		if rawTags, ok := m["tags"].([]any); ok {
			for _, t := range rawTags {
				if s, ok := t.(string); ok {
					tags = append(tags, s)
				}
			}
		}
		groups = append(groups, tagGroup{name: name, tags: tags})
	}
	return groups
}

// Resolve implements the three-tier hybrid category strategy, short-circuiting
// on the first tier that produces a category.
func Resolve(endpointTags []string, pathTemplate string, idx *TagIndex) Category {
	if len(endpointTags) > 0 && endpointTags[0] != "" {
		return resolveFromTag(endpointTags[0], idx)
	}
	if cat, ok := resolveFromPath(pathTemplate); ok {
		return cat
	}
	return Uncategorized
}

func resolveFromTag(tagName string, idx *TagIndex) Category {
	cat := Category{Name: NormalizeCategoryName(tagName), DisplayName: tagName}
	if idx == nil {
		return cat
	}
	if tag, ok := idx.byName[tagName]; ok {
		if displayName, ok := tag.Extra["x-displayName"].(string); ok && displayName != "" {
			cat.DisplayName = displayName
		} else if tag.Description != "" {
			cat.DisplayName = tag.Name
		}
	}
	if group, ok := idx.groupForTag[tagName]; ok {
		cat.Group = group
	}
	return cat
}

func resolveFromPath(pathTemplate string) (Category, bool) {
	path := strings.TrimPrefix(pathTemplate, "/api")
	path = strings.TrimPrefix(path, "/")
	segments := strings.Split(path, "/")

	for _, seg := range segments {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		if isVersionSegment(seg) {
			continue
		}
		lower := strings.ToLower(seg)
		if stopSegments[lower] {
			continue
		}
		return Category{Name: NormalizeCategoryName(seg), DisplayName: naming.ToTitleCase(seg)}, true
	}
	return Category{}, false
}

// isVersionSegment reports whether seg looks like "v1", "v2", "v10" — the
// version-prefix tier-2 rule.
func isVersionSegment(seg string) bool {
	if len(seg) < 2 || (seg[0] != 'v' && seg[0] != 'V') {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var categoryCaser = cases.Lower(language.Und)

// NormalizeCategoryName applies the catalog's normalization rule: lowercase,
// hyphens/spaces become underscores, unicode letters preserved, invalid
// characters stripped. An empty result normalizes to "uncategorized".
func NormalizeCategoryName(name string) string {
	if name == "" {
		return Uncategorized.Name
	}
	normalized := norm.NFC.String(name)
	lowered := categoryCaser.String(normalized)

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r == ' ' || r == '-':
			b.WriteRune('_')
		case r == '_':
			b.WriteRune('_')
		case isLetterOrDigit(r):
			b.WriteRune(r)
		default:
			// strip invalid characters
		}
	}
	out := b.String()
	if out == "" {
		return Uncategorized.Name
	}
	return out
}

func isLetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 0x7F
}
