// Package markdown converts markdown bodies to markup.
//
// Raw HTML passes through untouched so component invocations written inside
// markdown survive conversion. Fenced code blocks that name a language can be
// highlighted with chroma using class-based spans. Interpolation tokens such
// as {{ content.url }} come out exactly as written, including inside link and
// image destinations.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/rovr/internal/metadata"
)

// DefaultStyle is the chroma style used for generated highlight CSS.
const DefaultStyle = "github"

// Options control a single conversion.
type Options struct {
	Highlight bool
}

// Converter turns markdown into markup. It is safe for concurrent use.
type Converter struct {
	plain       goldmark.Markdown
	highlighted goldmark.Markdown
	style       *chroma.Style
}

// NewConverter builds a converter whose highlighter uses the named chroma style.
func NewConverter(style string) *Converter {
	if style == "" {
		style = DefaultStyle
	}
	s := resolveStyle(style)

	return &Converter{
		plain: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		highlighted: goldmark.New(
			goldmark.WithExtensions(extension.GFM, newHighlighting(s)),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		style: s,
	}
}

// ToMarkup converts src to markup.
func (c *Converter) ToMarkup(src []byte, opts Options) (string, error) {
	md := c.plain
	if opts.Highlight {
		md = c.highlighted
	}
	src, restore := protectTokens(src)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	if restore == nil {
		return buf.String(), nil
	}
	return restore.Replace(buf.String()), nil
}

// protectTokens swaps every interpolation token for a plain word goldmark
// leaves alone, so destinations are not percent-encoded and emphasis markers
// never split a token. The returned replacer puts the tokens back.
func protectTokens(src []byte) ([]byte, *strings.Replacer) {
	var pairs []string
	out := metadata.ReplaceTokens(string(src), func(token string) string {
		placeholder := fmt.Sprintf("rovrtoken%dz", len(pairs)/2)
		pairs = append(pairs, placeholder, token)
		return placeholder
	})
	if len(pairs) == 0 {
		return src, nil
	}
	return []byte(out), strings.NewReplacer(pairs...)
}

// WriteCSS writes the stylesheet matching the highlighter's classes.
func (c *Converter) WriteCSS(w io.Writer) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, c.style)
}
