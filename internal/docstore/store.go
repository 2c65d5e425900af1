// Package docstore is the document store adapter: collection-scoped CRUD with
// store-assigned identifiers and descending listing by a field. Backends are
// interchangeable behind Store and are always constructed explicitly by the
// caller; there is no package-level client.
package docstore

import (
	"context"
	"strings"
	"time"
)

// Document is a stored record with its identifier attached.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store is implemented by every backend.
//
// Update merges the given fields into an existing document and returns
// apperr.ErrNotFound when the document does not exist. Delete succeeds whether
// or not the document exists. List returns the whole collection ordered by
// orderBy, descending.
type Store interface {
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection, orderBy string) ([]Document, error)
	Ping(ctx context.Context) error
	Close() error
}

// cloneFields deep-copies the JSON-like values the adapters exchange, so that
// callers and in-process backends never share slices or maps.
func cloneFields(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneFields(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// sortKey turns an ordering field value into something comparable. Timestamps
// are stored as fixed-width UTC strings, so strings compare chronologically.
func sortKey(v any) (float64, string, bool) {
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t)); err == nil {
			return float64(ts.UnixMicro()), "", true
		}
		return 0, t, true
	case time.Time:
		return float64(t.UnixMicro()), "", true
	case float64:
		return t, "", true
	case int:
		return float64(t), "", true
	case int64:
		return float64(t), "", true
	default:
		return 0, "", false
	}
}

// less reports whether a sorts before b in ascending order. Missing values
// sort first, numeric keys before plain strings.
func less(a, b any) bool {
	an, as, aok := sortKey(a)
	bn, bs, bok := sortKey(b)
	switch {
	case !aok || !bok:
		return !aok && bok
	case as != "" || bs != "":
		if as == "" {
			return true
		}
		if bs == "" {
			return false
		}
		return as < bs
	default:
		return an < bn
	}
}
