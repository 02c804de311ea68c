package mcpsrv

import (
	"strings"

	"github.com/erraggy/oaskb/oaserrors"
)

var validHTTPMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

var validExampleFormats = map[string]bool{"curl": true, "http-client": true, "script": true}

var validSortBy = map[string]bool{"name": true, "endpointCount": true, "group": true}

func validationErr(param string, value any, message string, suggestions ...string) error {
	return &oaserrors.ValidationInputError{
		Parameter:   param,
		Value:       value,
		Message:     message,
		Suggestions: suggestions,
	}
}

func validateKeywords(keywords string) error {
	n := len(keywords)
	if n < 1 || n > 500 {
		return validationErr("keywords", keywords,
			"must be between 1 and 500 characters",
			"provide at least one search term", "shorten the query to 500 characters or fewer")
	}
	return nil
}

func validateHTTPMethods(methods []string) error {
	seen := make(map[string]bool, len(methods))
	for _, m := range methods {
		upper := strings.ToUpper(m)
		if !validHTTPMethods[upper] {
			return validationErr("httpMethods", m,
				"must be one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
				"remove the unrecognized method", "check for a typo in the HTTP verb")
		}
		if seen[upper] {
			return validationErr("httpMethods", methods,
				"must not contain duplicate methods", "remove the duplicate entry")
		}
		seen[upper] = true
	}
	return nil
}

// trimmedOrEmpty enforces a <=255 length cap on an optional string filter and
// normalizes whitespace-only input to empty, matching the "empty -> null" rule
// for category/categoryGroup parameters.
func trimmedOrEmpty(param, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > 255 {
		return "", validationErr(param, value, "must be 255 characters or fewer",
			"shorten the value to 255 characters or fewer")
	}
	return trimmed, nil
}

func validatePage(page int) (int, error) {
	if page == 0 {
		return 1, nil
	}
	if page < 1 {
		return 0, validationErr("page", page, "must be >= 1", "use page=1 for the first page")
	}
	return page, nil
}

func validatePerPage(perPage int) (int, error) {
	if perPage == 0 {
		return 20, nil
	}
	if perPage < 1 || perPage > 50 {
		return 0, validationErr("perPage", perPage, "must be between 1 and 50",
			"use a value between 1 and 50", "the default is 20")
	}
	return perPage, nil
}

func validateComponentName(name string) error {
	n := len(name)
	if n < 1 || n > 255 {
		return validationErr("componentName", name, "must be between 1 and 255 characters",
			"provide a non-empty schema component name")
	}
	return nil
}

func validateMaxDepth(maxDepth int) (int, error) {
	if maxDepth == 0 {
		return 3, nil
	}
	if maxDepth < 1 || maxDepth > 10 {
		return 0, validationErr("maxDepth", maxDepth, "must be between 1 and 10",
			"use a value between 1 and 10", "the default is 3")
	}
	return maxDepth, nil
}

// normalizeComponentName strips the ref-like prefixes getSchema accepts
// (#/components/schemas/X, #/definitions/X, components/schemas/X) down to
// the bare schema name.
func normalizeComponentName(name string) string {
	trimmed := strings.TrimPrefix(name, "#/")
	for _, prefix := range []string{"components/schemas/", "definitions/"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimPrefix(trimmed, prefix)
		}
	}
	return trimmed
}

func validateEndpointAndMethod(endpoint, method string) error {
	if strings.TrimSpace(endpoint) == "" {
		return validationErr("endpoint", endpoint, "must not be empty",
			"provide a path (e.g. /users/{id}) or an endpoint id")
	}
	if strings.HasPrefix(endpoint, "/") && strings.TrimSpace(method) == "" {
		return validationErr("method", method, "is required when endpoint is a path",
			"specify the HTTP method for this path, e.g. GET")
	}
	if method != "" && !validHTTPMethods[strings.ToUpper(method)] {
		return validationErr("method", method,
			"must be one of GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
			"check for a typo in the HTTP verb")
	}
	return nil
}

func validateFormat(format string) error {
	if !validExampleFormats[format] {
		return validationErr("format", format, "must be one of curl, http-client, script",
			"choose curl, http-client, or script")
	}
	return nil
}

func validateSortBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "name", nil
	}
	if !validSortBy[sortBy] {
		return "", validationErr("sortBy", sortBy, "must be one of name, endpointCount, group",
			"choose name, endpointCount, or group")
	}
	return sortBy, nil
}
