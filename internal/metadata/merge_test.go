package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ChildWinsRecursively(t *testing.T) {
	parent := map[string]any{
		"title":  "Site",
		"layout": "root",
		"nav":    map[string]any{"home": "/", "about": "/about"},
		"tags":   []any{"a", "b"},
	}
	child := map[string]any{
		"title": "Page",
		"nav":   map[string]any{"about": "/about-us"},
		"tags":  []any{"c"},
	}

	got := Merge(parent, child)

	assert.Equal(t, map[string]any{
		"title":  "Page",
		"layout": "root",
		"nav":    map[string]any{"home": "/", "about": "/about-us"},
		"tags":   []any{"c"},
	}, got)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	parent := map[string]any{"nav": map[string]any{"home": "/"}}
	child := map[string]any{"nav": map[string]any{"blog": "/blog"}}

	got := Merge(parent, child)
	got["nav"].(map[string]any)["extra"] = true

	require.Equal(t, map[string]any{"nav": map[string]any{"home": "/"}}, parent)
	require.Equal(t, map[string]any{"nav": map[string]any{"blog": "/blog"}}, child)
}

// Composition along A -> B -> C equals merge(C < B < A).
func TestMerge_ChainAssociativity(t *testing.T) {
	a := map[string]any{"x": 1, "deep": map[string]any{"p": "a"}}
	b := map[string]any{"x": 2, "y": 2, "deep": map[string]any{"p": "b", "q": "b"}}
	c := map[string]any{"x": 3, "y": 3, "z": 3, "deep": map[string]any{"q": "c", "r": "c"}}

	stepwise := Merge(c, Merge(b, a))
	leftFirst := Merge(Merge(c, b), a)

	assert.Equal(t, stepwise, leftFirst)
	assert.Equal(t, map[string]any{
		"x": 1, "y": 2, "z": 3,
		"deep": map[string]any{"p": "a", "q": "b", "r": "c"},
	}, stepwise)
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, map[string]any{}, Merge(nil, nil))
	assert.Equal(t, map[string]any{"a": 1}, Merge(nil, map[string]any{"a": 1}))
}

func TestNormalize(t *testing.T) {
	in := map[any]any{"a": map[any]any{1: "one"}, "b": []any{map[any]any{"c": true}}}
	assert.Equal(t, map[string]any{
		"a": map[string]any{"1": "one"},
		"b": []any{map[string]any{"c": true}},
	}, Normalize(in))
}
