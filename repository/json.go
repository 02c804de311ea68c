package repository

import "encoding/json"

// marshalJSON renders v as compact JSON, falling back to an explicit empty
// container on a nil/zero value so inserted columns never hold NULL where
// the schema declares a NOT NULL DEFAULT.
func marshalJSON(v any, empty string) string {
	if v == nil {
		return empty
	}
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return empty
	}
	return string(b)
}

func unmarshalJSON[T any](s string) T {
	var out T
	if s == "" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	return out
}
