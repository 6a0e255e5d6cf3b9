package collab

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is an opaque JSON object returned by a collaborator.
// Collaborator schemas are not enforced here, so every read goes through a
// presence-checked accessor.
type Record map[string]any

// Value returns the raw value for key. A key holding JSON null is reported absent.
func (r Record) Value(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Text returns the value for key formatted as display text.
// Non-string scalars are formatted the way they appear in JSON.
func (r Record) Text(key string) (string, bool) {
	v, ok := r.Value(key)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// TextOr returns Text(key), or def when the key is absent.
func (r Record) TextOr(key, def string) string {
	if s, ok := r.Text(key); ok {
		return s
	}
	return def
}

// List returns the value for key when it is a JSON array.
func (r Record) List(key string) ([]any, bool) {
	v, ok := r.Value(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// Strings returns the value for key as display strings when it is a JSON array.
func (r Record) Strings(key string) ([]string, bool) {
	list, ok := r.List(key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, Stringify(item))
	}
	return out, true
}

// Records returns the object elements of a JSON array at key.
// Elements that are not objects are skipped.
func (r Record) Records(key string) ([]Record, bool) {
	list, ok := r.List(key)
	if !ok {
		return nil, false
	}
	return toRecords(list), true
}

func toRecords(list []any) []Record {
	out := make([]Record, 0, len(list))
	for _, item := range list {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, Record(m))
		case Record:
			out = append(out, m)
		}
	}
	return out
}

// Stringify formats a decoded JSON value for display.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case []any, map[string]any, Record:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
