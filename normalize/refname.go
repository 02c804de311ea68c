package normalize

import "strings"

// ExtractRefName returns the bare component name from a local JSON reference,
// e.g. "#/components/schemas/Pet" -> "Pet", "#/definitions/Pet" -> "Pet".
// Non-local or malformed references return the original string unchanged so
// callers can detect and warn about them rather than silently dropping them.
func ExtractRefName(ref string) string {
	if ref == "" {
		return ref
	}
	idx := strings.LastIndex(ref, "/")
	if idx < 0 || idx == len(ref)-1 {
		return ref
	}
	return ref[idx+1:]
}

// IsLocalComponentRef reports whether ref points within the same document at
// one of the component containers normalization understands (OAS 3.x
// components.* or OAS 2.0 definitions/parameters/responses).
func IsLocalComponentRef(ref string) bool {
	if !strings.HasPrefix(ref, "#/") {
		return false
	}
	switch {
	case strings.HasPrefix(ref, "#/components/"):
		return true
	case strings.HasPrefix(ref, "#/definitions/"):
		return true
	case strings.HasPrefix(ref, "#/parameters/"):
		return true
	case strings.HasPrefix(ref, "#/responses/"):
		return true
	default:
		return false
	}
}
