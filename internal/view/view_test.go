package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLayout_SubstitutesFirstPlaceholderOnly(t *testing.T) {
	child := New("<h1>Hi</h1>", map[string]any{"title": "Child"})
	layout := New("<body>{{ content }}<footer>{{content}}</footer></body>", map[string]any{"title": "Base", "lang": "en"})

	got := child.ApplyLayout(layout)

	assert.Equal(t, "<body><h1>Hi</h1><footer>{{content}}</footer></body>", got.Content)
	assert.Equal(t, map[string]any{"title": "Child", "lang": "en"}, got.Metadata)
}

func TestApplyLayout_WithoutPlaceholderKeepsLayoutBody(t *testing.T) {
	got := New("ignored", nil).ApplyLayout(New("<p>static</p>", nil))
	assert.Equal(t, "<p>static</p>", got.Content)
}

func TestApplyLayout_ContentWithDollarSignsIsLiteral(t *testing.T) {
	got := New("costs $1 and ${x}", nil).ApplyLayout(New("<p>{{content}}</p>", nil))
	assert.Equal(t, "<p>costs $1 and ${x}</p>", got.Content)
}

func TestApplyMetadata(t *testing.T) {
	v := New("{{ site.title }}: {{ content.name }}", map[string]any{"name": "Sam"})
	v = v.ApplyMetadata("site", map[string]any{"title": "Rovr"})
	v = v.ApplyMetadata("content", v.Metadata)
	require.Equal(t, "Rovr: Sam", v.Content)
}

func TestLayoutName(t *testing.T) {
	assert.Equal(t, "base", New("", map[string]any{"layout": "base"}).LayoutName())
	assert.Equal(t, "", New("", map[string]any{"layout": 3}).LayoutName())
	assert.Equal(t, "", New("", nil).LayoutName())
}
