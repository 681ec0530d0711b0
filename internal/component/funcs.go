package component

import (
	"fmt"
	"html/template"
	"reflect"
	"sort"
	"strings"

	"git.home.luguber.info/inful/rovr/internal/metadata"
)

// funcMap is available to every component definition.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict":    dict,
		"list":    list,
		"attrs":   attrs,
		"safe":    safe,
		"join":    join,
		"default": defaultValue,
	}
}

// dict builds a map from alternating keys and values, for passing props to
// nested templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(pairs))
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func list(items ...any) []any {
	return items
}

// attrs renders a map as escaped attribute pairs in key order. Boolean true
// renders the bare key; false and nil are dropped.
func attrs(m map[string]any) template.HTMLAttr {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		switch v := m[k].(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			fmt.Fprintf(&b, " %s", template.HTMLEscapeString(k))
		default:
			fmt.Fprintf(&b, ` %s="%s"`, template.HTMLEscapeString(k), template.HTMLEscapeString(metadata.Stringify(v)))
		}
	}
	return template.HTMLAttr(b.String())
}

func safe(s any) template.HTML {
	return template.HTML(metadata.Stringify(s)) //nolint:gosec // component authors are trusted
}

func join(sep string, v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return metadata.Stringify(v)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = metadata.Stringify(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep)
}

// defaultValue returns v when it is truthy, otherwise def.
func defaultValue(def, v any) any {
	if metadata.Truthy(v) {
		return v
	}
	return def
}
