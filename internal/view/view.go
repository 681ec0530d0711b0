// Package view holds the transient content/metadata pair rendered for one file.
package view

import (
	"regexp"

	"git.home.luguber.info/inful/rovr/internal/metadata"
)

var contentPlaceholder = regexp.MustCompile(`\{\{\s*content\s*\}\}`)

// View is a body of text plus the metadata governing its rendering.
type View struct {
	Content  string
	Metadata map[string]any
}

// New returns a View over content and a private copy of meta.
func New(content string, meta map[string]any) View {
	m := metadata.Clone(meta)
	if m == nil {
		m = map[string]any{}
	}
	return View{Content: content, Metadata: m}
}

// ApplyLayout wraps the view in layout: the first content placeholder of the
// layout body is replaced by the view's content and the layout metadata is
// merged underneath the view's own (child wins). A layout without a
// placeholder keeps its body as is.
func (v View) ApplyLayout(layout View) View {
	body := layout.Content
	if loc := contentPlaceholder.FindStringIndex(body); loc != nil {
		body = body[:loc[0]] + v.Content + body[loc[1]:]
	}
	return View{
		Content:  body,
		Metadata: metadata.Merge(layout.Metadata, v.Metadata),
	}
}

// ApplyMetadata resolves `{{ scope.path }}` tokens in the content against data.
func (v View) ApplyMetadata(scope string, data any) View {
	v.Content = metadata.Interpolate(v.Content, scope, data)
	return v
}

// LayoutName returns the `layout` field of the metadata, if it is a non-empty string.
func (v View) LayoutName() string {
	name, _ := v.Metadata["layout"].(string)
	return name
}
