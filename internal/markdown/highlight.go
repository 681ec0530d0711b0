package markdown

import (
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/util"
)

func resolveStyle(name string) *chroma.Style {
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

// newHighlighting returns the goldmark extension that runs fenced code blocks
// naming a known language through chroma with class-based spans. Other blocks
// keep goldmark's plain <pre><code> output.
func newHighlighting(style *chroma.Style) goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithCustomStyle(style),
		highlighting.WithGuessLanguage(false),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		highlighting.WithWrapperRenderer(writeCodeWrapper),
	)
}

func writeCodeWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}
	lang, ok := c.Language()
	if !ok || len(lang) == 0 {
		_, _ = w.WriteString("<pre><code>")
		return
	}
	_, _ = w.WriteString(`<pre><code class="language-`)
	_, _ = w.Write(util.EscapeHTML(lang))
	_, _ = w.WriteString(`">`)
}
