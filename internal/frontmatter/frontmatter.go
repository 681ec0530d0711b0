// Package frontmatter splits a YAML front matter header from a document body.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Style captures the newline shape of a document so generated files match it.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Document is a source file split into its parsed header and remaining body.
type Document struct {
	Fields map[string]any
	Body   []byte
	Had    bool
	Style  Style
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Split separates YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. A closing delimiter at end of input without a trailing
// newline is accepted.
func Split(content []byte) (header []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	start := len(open)
	rest := content[start:]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, style, nil
	}

	eof := []byte(nl + "---")
	if bytes.HasSuffix(rest, eof) {
		return rest[:len(rest)-len("---")], []byte{}, true, style, nil
	}

	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw front matter and body.
func Join(header []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte("---" + nl)

	out := make([]byte, 0, 2*len(delim)+len(header)+len(body))
	out = append(out, delim...)
	out = append(out, header...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// Parse splits content and decodes the header into a map.
func Parse(content []byte) (Document, error) {
	header, body, had, style, err := Split(content)
	if err != nil {
		return Document{Body: content, Style: style}, err
	}
	doc := Document{Body: body, Had: had, Style: style, Fields: map[string]any{}}
	if !had {
		return doc, nil
	}
	fields, err := ParseYAML(header)
	if err != nil {
		return Document{Body: content, Style: style}, err
	}
	doc.Fields = fields
	return doc, nil
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(header)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
