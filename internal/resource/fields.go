package resource

import (
	"time"
)

// The helpers below read loosely typed document fields. Backends disagree on
// concrete types (Firestore returns time.Time and int64, JSON backends return
// float64 and []any), so every accessor tolerates the variants.

func String(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case time.Time:
		return Timestamp(v)
	default:
		return ""
	}
}

// OptionalString returns nil for a missing, null or empty value.
func OptionalString(fields map[string]any, key string) *string {
	s := String(fields, key)
	if s == "" {
		return nil
	}
	return &s
}

func Bool(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// Strings returns a non-nil slice for []string and []any values; non-string
// elements are dropped.
func Strings(fields map[string]any, key string) []string {
	switch v := fields[key].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
