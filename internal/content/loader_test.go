package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", []byte("---\nlayout: base\nname: Sam\n---\n# Hi {{content.name}}\n"))
	writeFile(t, root, "plain.html", []byte("<p>no header</p>"))
	writeFile(t, root, "logo.png", []byte{0x89, 'P', 'N', 'G', 0xff, 0x00})
	writeFile(t, root, "bom.html", append([]byte{0xEF, 0xBB, 0xBF}, []byte("---\ntitle: BOM\n---\nbody")...))
	writeFile(t, root, "broken.html", []byte("---\n: [\n---\nbody"))

	l := NewLoader(root, nil)

	tests := []struct {
		rel         string
		shouldParse bool
		validText   bool
		body        string
		meta        map[string]any
	}{
		{"index.md", true, true, "# Hi {{content.name}}\n", map[string]any{"layout": "base", "name": "Sam"}},
		{"plain.html", false, true, "<p>no header</p>", map[string]any{}},
		{"logo.png", false, false, "", map[string]any{}},
		{"bom.html", true, true, "body", map[string]any{"title": "BOM"}},
		{"broken.html", false, true, "---\n: [\n---\nbody", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			item, err := l.Load(tt.rel)
			require.NoError(t, err)
			assert.Equal(t, tt.rel, item.Path)
			assert.Equal(t, tt.rel, item.SourcePath)
			assert.Equal(t, tt.shouldParse, item.ShouldParse)
			assert.Equal(t, tt.validText, item.IsValidText)
			assert.Equal(t, tt.body, item.Body)
			assert.Equal(t, tt.meta, item.Metadata)
			assert.NotEmpty(t, item.Raw)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir(), nil).Load("nope.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeText_UTF16WithBOM(t *testing.T) {
	// "hi" in UTF-16LE with BOM.
	text, ok := DecodeText([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00})
	require.True(t, ok)
	assert.Equal(t, "hi", text)

	_, ok = DecodeText([]byte{0xC3, 0x28})
	assert.False(t, ok)
}
