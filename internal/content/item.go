// Package content discovers and loads the files of a site source tree.
package content

import (
	"path"
	"strings"
)

// Item is one source file and, after rendering, its output.
type Item struct {
	// Path is the relative slash path the item is written to. Rendering may
	// rewrite its extension.
	Path string
	// SourcePath is the relative slash path the item was read from.
	SourcePath string
	Metadata   map[string]any
	// Body is the text after the front matter header, replaced by the
	// rendered output once the item is rendered.
	Body           string
	ShouldParse    bool
	IsValidText    bool
	HadFrontMatter bool
	Raw            []byte
}

// Ext returns the lowercased extension of the source path.
func (i *Item) Ext() string {
	return strings.ToLower(path.Ext(i.SourcePath))
}

// ShouldWrite reports whether the item belongs in the output: no segment of
// its path may start with an underscore.
func (i *Item) ShouldWrite() bool {
	return !strings.Contains("/"+i.Path, "/_")
}

// IsMarkdown reports whether the item is converted from markdown.
func (i *Item) IsMarkdown() bool {
	ext := i.Ext()
	return ext == ".md" || ext == ".markdown"
}

// IsMarkup reports whether the item is rendered as markup (after any
// markdown conversion).
func (i *Item) IsMarkup() bool {
	ext := i.Ext()
	return ext == ".html" || ext == ".htm" || i.IsMarkdown()
}

// OutputPathForMarkdown rewrites a .md or .markdown path to .html.
func OutputPathForMarkdown(p string) string {
	ext := path.Ext(p)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return strings.TrimSuffix(p, ext) + ".html"
	default:
		return p
	}
}
