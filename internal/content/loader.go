package content

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/rovr/internal/frontmatter"
	"git.home.luguber.info/inful/rovr/internal/logfields"
	"git.home.luguber.info/inful/rovr/internal/metadata"
)

// Loader reads items relative to a source directory.
type Loader struct {
	root   string
	logger *slog.Logger
}

// NewLoader returns a Loader for files under root.
func NewLoader(root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{root: root, logger: logger}
}

// Load reads the file at rel (a slash path relative to the root). Text that
// starts with a front matter header is marked for parsing; everything else is
// passed through.
func (l *Loader) Load(rel string) (*Item, error) {
	raw, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	item := &Item{
		Path:       rel,
		SourcePath: rel,
		Metadata:   map[string]any{},
		Raw:        raw,
	}

	text, ok := DecodeText(raw)
	if !ok {
		return item, nil
	}
	item.IsValidText = true

	doc, err := frontmatter.Parse([]byte(text))
	switch {
	case errors.Is(err, frontmatter.ErrMissingClosingDelimiter):
		item.Body = text
		return item, nil
	case err != nil:
		l.logger.Warn("Ignoring unparseable front matter", logfields.Path(rel), logfields.Error(err))
		item.Body = text
		return item, nil
	}

	item.Body = string(doc.Body)
	item.HadFrontMatter = doc.Had
	item.ShouldParse = doc.Had
	if fields, ok := metadata.Normalize(doc.Fields).(map[string]any); ok {
		item.Metadata = fields
	}
	return item, nil
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText returns raw as a string when it is UTF-8 (an optional BOM is
// stripped) or UTF-16 introduced by a BOM. ok is false for anything else.
func DecodeText(raw []byte) (string, bool) {
	utf16 := bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE)
	if !utf16 && !utf8.Valid(raw) {
		return "", false
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}
