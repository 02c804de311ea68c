package normalize

import (
	"sort"
	"strings"

	"github.com/erraggy/oaskb/internal/naming"
)

// ExtensionCategory classifies a specification-extension key (a field
// starting with "x-") by what it is used for.
type ExtensionCategory string

const (
	ExtensionDocumentation ExtensionCategory = "documentation"
	ExtensionVendor        ExtensionCategory = "vendor"
	ExtensionLanguage      ExtensionCategory = "language"
	ExtensionBehavior      ExtensionCategory = "behavior"
	ExtensionSecurity      ExtensionCategory = "security"
	ExtensionPagination    ExtensionCategory = "pagination"
	ExtensionCustom        ExtensionCategory = "custom"
)

// vendorPrefixes maps known vendor extension prefixes to a canonical,
// de-vendored key prefix used when normalizing their shape.
var vendorPrefixes = map[string]string{
	"x-amazon-":    "aws_",
	"x-aws-":       "aws_",
	"x-ms-":        "azure_",
	"x-azure-":     "azure_",
	"x-google-":    "google_",
	"x-codeSamples": "docs_",
	"x-readme-":    "docs_",
}

var languagePrefixes = []string{"x-go-", "x-java-", "x-python-", "x-typescript-", "x-csharp-", "x-ruby-"}

var documentationKeys = map[string]bool{
	"x-displayname":       true,
	"x-display-name":      true,
	"x-description":       true,
	"x-doc":               true,
	"x-docs":              true,
	"x-documentation":     true,
	"x-deprecated-message": true,
	"x-summary":           true,
}

var behaviorKeys = map[string]bool{
	"x-rate-limit":  true,
	"x-throttle":    true,
	"x-idempotent":  true,
	"x-async":       true,
	"x-retry":       true,
	"x-nullable":    true,
}

var securityKeys = map[string]bool{
	"x-security":     true,
	"x-auth":         true,
	"x-authz":        true,
	"x-scopes":       true,
	"x-token-format": true,
}

var paginationKeys = map[string]bool{
	"x-pagination": true,
	"x-page-size":  true,
	"x-cursor":     true,
	"x-next-page":  true,
	"x-page-token": true,
}

// Classify assigns a category to an extension key. Keys are compared
// case-insensitively since "x-DisplayName" and "x-displayName" are seen
// equally often in the wild.
func Classify(key string) ExtensionCategory {
	lower := strings.ToLower(key)
	for prefix := range vendorPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return ExtensionVendor
		}
	}
	for _, prefix := range languagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ExtensionLanguage
		}
	}
	if documentationKeys[lower] {
		return ExtensionDocumentation
	}
	if behaviorKeys[lower] {
		return ExtensionBehavior
	}
	if securityKeys[lower] {
		return ExtensionSecurity
	}
	if paginationKeys[lower] {
		return ExtensionPagination
	}
	return ExtensionCustom
}

// extractExtensions filters a raw catch-all field map down to keys beginning
// with "x-", which is all normalization ever persists as extensions.
func extractExtensions(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		if strings.HasPrefix(k, "x-") {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeVendorExtension rewrites a known vendor extension key into a
// canonical, de-vendored form (e.g. "x-amazon-apigateway-integration" ->
// "aws_apigateway_integration"). Keys without a recognized vendor prefix are
// returned unchanged.
func NormalizeVendorExtension(key string, value any) (string, any) {
	lower := strings.ToLower(key)
	for prefix, canonical := range vendorPrefixes {
		p := strings.ToLower(prefix)
		if strings.HasPrefix(lower, p) {
			rest := strings.TrimPrefix(lower, p)
			return canonical + naming.ToSnakeCase(rest), value
		}
	}
	return key, value
}

// MergeStrategy controls how MergeExtensions combines two extension maps
// when the same key appears in both.
type MergeStrategy int

const (
	// MergeOverride keeps the value from the second (override) map.
	MergeOverride MergeStrategy = iota
	// MergeDeep recursively merges nested maps, falling back to override
	// for non-map values.
	MergeDeep
	// MergeCombineLists concatenates slice values instead of replacing them,
	// falling back to MergeDeep behavior for everything else.
	MergeCombineLists
)

// MergeExtensions merges override into base according to strategy, returning
// a new map; neither input is mutated.
func MergeExtensions(base, override map[string]any, strategy MergeStrategy) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		bv, exists := out[k]
		if !exists || strategy == MergeOverride {
			out[k] = ov
			continue
		}
		out[k] = mergeValue(bv, ov, strategy)
	}
	return out
}

func mergeValue(base, override any, strategy MergeStrategy) any {
	if strategy == MergeCombineLists {
		if baseList, ok := base.([]any); ok {
			if overrideList, ok := override.([]any); ok {
				return append(append([]any(nil), baseList...), overrideList...)
			}
		}
	}
	if baseMap, ok := base.(map[string]any); ok {
		if overrideMap, ok := override.(map[string]any); ok {
			return MergeExtensions(baseMap, overrideMap, strategy)
		}
	}
	return override
}

// SearchableText flattens the human-readable string leaves of an extension
// map into a single space-joined blob for full-text indexing.
func SearchableText(extra map[string]any) string {
	var parts []string
	collectStrings(extra, &parts)
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func collectStrings(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		*out = append(*out, t)
	case map[string]any:
		for _, k := range sortedKeys(t) {
			collectStrings(t[k], out)
		}
	case []any:
		for _, item := range t {
			collectStrings(item, out)
		}
	}
}
