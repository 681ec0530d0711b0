package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, site map[string]any, defs ...Definition) *Engine {
	t.Helper()
	e, err := Compile(defs, Context{Site: site}, Options{})
	require.NoError(t, err)
	return e
}

func TestCompile_NamesBrokenDefinition(t *testing.T) {
	_, err := Compile([]Definition{
		{Name: "Good", Source: `<p>{{ .Props.x }}</p>`},
		{Name: "Broken", Source: `<p>{{ if .Props.x }}</p>`},
	}, Context{}, Options{})

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Broken", ce.Name)
	assert.Contains(t, ce.Error(), `"Broken"`)
}

func TestCompile_UnknownFunctionFails(t *testing.T) {
	_, err := Compile([]Definition{{Name: "X", Source: `{{ nosuchfunc }}`}}, Context{}, Options{})
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "X", ce.Name)
}

func TestCompile_LaterDuplicateWins(t *testing.T) {
	e := mustCompile(t, nil,
		Definition{Name: "Hello", Source: "one"},
		Definition{Name: "Hello", Source: "two"},
	)
	out, err := e.Render("Hello", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "two", out)
	assert.Equal(t, 1, e.Len())
}

func TestRender_PropsChildrenSite(t *testing.T) {
	e := mustCompile(t, map[string]any{"title": "Rovr"},
		Definition{Name: "Box", Source: `<div class="{{ .Props.kind }}" title="{{ .Site.title }}">{{ .Children }}</div>`},
	)
	out, err := e.Render("Box", map[string]any{"kind": `a"b`}, "<em>hi</em>")
	require.NoError(t, err)
	assert.Equal(t, `<div class="a&#34;b" title="Rovr"><em>hi</em></div>`, out)
}

func TestRender_FuncMap(t *testing.T) {
	e := mustCompile(t, nil,
		Definition{Name: "Tags", Source: `{{ join ", " (list "a" "b") }}|{{ default "none" .Props.missing }}|<a{{ attrs (dict "href" "/x" "hidden" true "skip" false) }}>x</a>`},
	)
	out, err := e.Render("Tags", nil, "")
	require.NoError(t, err)
	assert.Equal(t, `a, b|none|<a hidden href="/x">x</a>`, out)
}

func TestRender_Unknown(t *testing.T) {
	e := mustCompile(t, nil)
	_, err := e.Render("Nope", nil, "")
	var uc *UnknownComponentError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "Nope", uc.Name)
}

func TestComponentPaths(t *testing.T) {
	assert.True(t, IsComponentPath("_components/Greeting.html"))
	assert.True(t, IsComponentPath("_components/cards/Card.gohtml"))
	assert.True(t, IsComponentPath("_components/Nav.tmpl"))
	assert.False(t, IsComponentPath("_components/Button.jsx"))
	assert.False(t, IsComponentPath("docs/_components/Card.html"))
	assert.Equal(t, "Card", NameFromPath("_components/cards/Card.gohtml"))
}
