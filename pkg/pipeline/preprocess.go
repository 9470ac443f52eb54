package pipeline

import (
	"encoding/json"
	"strings"
)

// normalizeFormValues recursively prepares raw input for schema validation.
// Endpoints receive flattened form and query data where nested structures
// arrive as strings, so:
//
//   - a string that looks like a JSON array or object literal is parsed
//     best-effort; on parse failure the original string is kept
//   - the literal strings "true" and "false" become booleans
//   - Go integer values are widened to float64, the shape JSON decoding
//     would have produced
//
// Other strings, including numeric-looking ones, are deliberately left
// alone; the heuristic covers only the documented cases.
func normalizeFormValues(v any) any {
	switch val := v.(type) {
	case string:
		return normalizeString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeFormValues(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeFormValues(item)
		}
		return out
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

func normalizeString(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return normalizeFormValues(parsed)
		}
	}
	return s
}
