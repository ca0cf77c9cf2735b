package models

import "encoding/json"

// RemoteRecord is a single row as seen by the remote data service. The remote
// backend is schemaless from the client's point of view, so records travel as
// loosely typed maps; entity models convert to and from this shape.
type RemoteRecord map[string]any

// ID extracts the remote numeric identity from the record. JSON decoding
// yields float64 for numbers, so several representations are accepted.
// Returns 0 when no id field is present.
func (r RemoteRecord) ID() int64 {
	switch v := r["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Str returns the string value stored under key, or "" when absent or not a
// string.
func (r RemoteRecord) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Filter is an equality filter spec passed to RemoteService.Query. Keys are
// remote column names, values are the exact values to match.
type Filter map[string]string
