package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMarkup_Basic(t *testing.T) {
	c := NewConverter("")

	out, err := c.ToMarkup([]byte("# Hi {{content.name}}\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi {{content.name}}</h1>\n", out)
}

func TestToMarkup_TokensSurviveConversion(t *testing.T) {
	c := NewConverter("")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"link destination", "[home]({{content.url}})\n", `<p><a href="{{content.url}}">home</a></p>` + "\n"},
		{"image destination", "![logo]({{site.base}}/a.png)\n", `<p><img src="{{site.base}}/a.png" alt="logo"></p>` + "\n"},
		{"spaced token in link", "[x]({{ content.url }})\n", `<p><a href="{{ content.url }}">x</a></p>` + "\n"},
		{"underscores in path", "{{content.first_name}} and {{content.last_name}}\n", "<p>{{content.first_name}} and {{content.last_name}}</p>\n"},
		{"component props untouched", "<Greeting name=\"{{ .Props.name }}\"/>\n", "<Greeting name=\"{{ .Props.name }}\"/>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.ToMarkup([]byte(tt.in), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestToMarkup_TokenInsideHighlightedCode(t *testing.T) {
	c := NewConverter("")

	out, err := c.ToMarkup([]byte("```go\nx := {{site.answer}}\n```\n"), Options{Highlight: true})
	require.NoError(t, err)
	assert.Contains(t, out, "{{site.answer}}")
	assert.NotContains(t, out, "rovrtoken")
}

func TestToMarkup_RawHTMLAndComponentsPassThrough(t *testing.T) {
	c := NewConverter("")

	out, err := c.ToMarkup([]byte("<Greeting name=\"Sam\"/>\n\nText with <Badge>new</Badge> inline.\n"), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, `<Greeting name="Sam"/>`)
	assert.Contains(t, out, `<Badge>new</Badge>`)
}

func TestToMarkup_GFMTable(t *testing.T) {
	c := NewConverter("")

	out, err := c.ToMarkup([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestToMarkup_HighlightWithLanguage(t *testing.T) {
	c := NewConverter("monokai")

	out, err := c.ToMarkup([]byte("```go\npackage main\n```\n"), Options{Highlight: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<pre><code class="language-go">`), out)
	assert.Contains(t, out, `<span class="kn">package</span>`)
	assert.True(t, strings.HasSuffix(out, "</code></pre>\n"), out)
}

func TestToMarkup_HighlightWithoutLanguageIsUnchanged(t *testing.T) {
	c := NewConverter("")
	src := []byte("```\na < b\n```\n")

	plain, err := c.ToMarkup(src, Options{})
	require.NoError(t, err)
	highlighted, err := c.ToMarkup(src, Options{Highlight: true})
	require.NoError(t, err)

	assert.Equal(t, "<pre><code>a &lt; b\n</code></pre>\n", plain)
	assert.Equal(t, plain, highlighted)
}

func TestToMarkup_UnknownLanguageIsNotHighlighted(t *testing.T) {
	c := NewConverter("")

	out, err := c.ToMarkup([]byte("```nosuchlang\nx <y>\n```\n"), Options{Highlight: true})
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"language-nosuchlang\">x &lt;y&gt;\n</code></pre>\n", out)
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConverter("github").WriteCSS(&buf))
	assert.Contains(t, buf.String(), ".chroma")
}
