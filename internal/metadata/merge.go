package metadata

// Merge returns a new map holding parent overlaid by child. Nested maps merge
// key by key; any other child value replaces the parent's. Neither input is
// modified.
func Merge(parent, child map[string]any) map[string]any {
	out := Clone(parent)
	if out == nil {
		out = map[string]any{}
	}
	mergeInto(out, child)
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if mv, ok := v.(map[string]any); ok {
			if existing, ok2 := dst[k].(map[string]any); ok2 {
				mergeInto(existing, mv)
				continue
			}
			dst[k] = Clone(mv)
			continue
		}
		dst[k] = cloneValue(v)
	}
}

// Clone deep-copies m.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return Clone(vv)
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Normalize converts map[any]any values (as produced by some decoders) into
// map[string]any recursively so the rest of the package sees one map shape.
func Normalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			out[Stringify(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}
