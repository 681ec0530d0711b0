package metadata

import (
	"math"
	"strconv"
)

// Truthy reports whether v continues a path walk. nil, false, "", numeric
// zero and NaN are falsy. Empty maps and lists are truthy.
func Truthy(v any) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case string:
		return vv != ""
	case int:
		return vv != 0
	case int8:
		return vv != 0
	case int16:
		return vv != 0
	case int32:
		return vv != 0
	case int64:
		return vv != 0
	case uint:
		return vv != 0
	case uint8:
		return vv != 0
	case uint16:
		return vv != 0
	case uint32:
		return vv != 0
	case uint64:
		return vv != 0
	case float32:
		return vv != 0 && !math.IsNaN(float64(vv))
	case float64:
		return vv != 0 && !math.IsNaN(vv)
	default:
		return true
	}
}

// Lookup walks path through data one segment at a time. The walk stops with
// ok=false at the first absent or falsy value, including the final one.
func Lookup(data any, path []string) (any, bool) {
	cur := data
	for _, seg := range path {
		next, ok := child(cur, seg)
		if !ok || !Truthy(next) {
			return nil, false
		}
		cur = next
	}
	return cur, Truthy(cur)
}

func child(v any, key string) (any, bool) {
	switch vv := v.(type) {
	case map[string]any:
		c, ok := vv[key]
		return c, ok
	case map[any]any:
		c, ok := vv[key]
		return c, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(vv) {
			return nil, false
		}
		return vv[i], true
	case []string:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(vv) {
			return nil, false
		}
		return vv[i], true
	default:
		return nil, false
	}
}
