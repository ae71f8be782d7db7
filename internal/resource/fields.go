package resource

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fields is a field-to-value mapping of a remote record.
type Fields map[string]any

// Clone returns a deep copy of f. Nested maps and slices are copied so that
// edits through one mapping never leak into another.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// canonical returns the serialization used for dirty detection. Keys are
// emitted in lexicographic order, so insertion order never matters.
func canonical(f Fields) []byte {
	data, err := json.Marshal(map[string]any(f))
	if err != nil {
		// Unserializable values can never equal a baseline.
		return []byte(fmt.Sprintf("!%v", err))
	}
	return data
}

// AsString renders a scalar field value as a string. Nil renders as "".
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// AsInt converts a numeric field value to int64.
func AsInt(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == math.Trunc(t) {
			return int64(t), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
