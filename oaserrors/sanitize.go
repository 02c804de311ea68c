package oaserrors

import "strings"

// maxSanitizedStringLen is the length beyond which string values in an error
// data payload are truncated before being returned to an MCP client.
const maxSanitizedStringLen = 512

// sensitiveKeyFragments are lowercase substrings that flag a data key as
// sensitive regardless of its exact spelling (password, db_password, apiToken...).
var sensitiveKeyFragments = []string{
	"password", "passwd", "secret", "token", "authorization", "auth_header",
	"api_key", "apikey", "connection_url", "connectionstring", "dsn",
	"credential", "private_key", "cookie",
}

// Sanitize returns a copy of data with sensitive keys redacted and long
// string values truncated: every error-returning MCP
// path must strip passwords, tokens, connection URLs, and authorization
// headers from its data section before it reaches a client.
func Sanitize(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		if isSensitiveKey(k) {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, frag := range sensitiveKeyFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		if len(val) > maxSanitizedStringLen {
			return val[:maxSanitizedStringLen] + "...[truncated]"
		}
		return val
	case map[string]any:
		return Sanitize(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return val
	}
}
