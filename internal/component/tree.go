package component

import (
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// NodeKind distinguishes element nodes from everything else.
type NodeKind int

const (
	// TextNode holds raw markup that is never inspected: text, comments,
	// doctypes and stray end tags.
	TextNode NodeKind = iota
	ElementNode
)

// Node is one entry of a lossless markup tree. Unmodified nodes serialize
// back to exactly the bytes they were parsed from.
type Node struct {
	Kind NodeKind
	// Raw is the text of a TextNode or the open tag of an ElementNode.
	Raw string
	// Name is the lowercased tag name; TagName keeps the source spelling.
	Name     string
	TagName  string
	Attrs    []html.Attribute
	Children []*Node
	// End is the raw close tag, empty for void, self-closing and unclosed elements.
	End         string
	SelfClosing bool

	dirty bool
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Parse tokenizes markup into a forest of nodes. End tags close the nearest
// open element of the same name; end tags matching nothing are kept as text.
func Parse(markup string) ([]*Node, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	root := &Node{Kind: ElementNode}
	stack := []*Node{root}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, z.Err()
		}
		raw := string(z.Raw())
		parent := stack[len(stack)-1]

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &Node{
				Kind:        ElementNode,
				Raw:         raw,
				Name:        tok.Data,
				TagName:     sourceTagName(raw, tok.Data),
				Attrs:       tok.Attr,
				SelfClosing: tt == html.SelfClosingTagToken,
			}
			parent.Children = append(parent.Children, n)
			// Void names only apply to plain elements; <Link> is a component.
			if !n.SelfClosing && (n.IsInvocation() || !voidElements[n.Name]) {
				stack = append(stack, n)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			idx := -1
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Name == string(name) {
					idx = i
					break
				}
			}
			if idx < 0 {
				parent.Children = append(parent.Children, &Node{Kind: TextNode, Raw: raw})
				continue
			}
			stack[idx].End = raw
			stack = stack[:idx]
		default:
			parent.Children = append(parent.Children, &Node{Kind: TextNode, Raw: raw})
		}
	}
	return root.Children, nil
}

// sourceTagName recovers the tag name as written, which the tokenizer lowercases.
func sourceTagName(raw, lower string) string {
	if len(raw) >= 1+len(lower) && strings.EqualFold(raw[1:1+len(lower)], lower) {
		return raw[1 : 1+len(lower)]
	}
	return lower
}

// Serialize writes nodes back to markup.
func Serialize(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n.Kind == TextNode {
		b.WriteString(n.Raw)
		return
	}
	if n.dirty {
		tt := html.StartTagToken
		if n.SelfClosing {
			tt = html.SelfClosingTagToken
		}
		b.WriteString(html.Token{Type: tt, Data: n.TagName, Attr: n.Attrs}.String())
	} else {
		b.WriteString(n.Raw)
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString(n.End)
}

// IsInvocation reports whether n names a component: an element whose tag
// starts with an uppercase letter.
func (n *Node) IsInvocation() bool {
	if n.Kind != ElementNode || n.TagName == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(n.TagName)
	return unicode.IsUpper(r)
}

// Attr returns the value of the attribute key (lowercase).
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces or appends an attribute and marks the open tag for regeneration.
func (n *Node) SetAttr(key, val string) {
	n.dirty = true
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, html.Attribute{Key: key, Val: val})
}

// valuelessAttrs scans a raw open tag and returns the attribute keys written
// without a value, such as `disabled` in `<Button disabled>`.
func valuelessAttrs(raw string) map[string]bool {
	out := map[string]bool{}
	i := 1
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}
	for i < len(raw) {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		start := i
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		key := strings.ToLower(raw[start:i])
		j := i
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j >= len(raw) || raw[j] != '=' {
			out[key] = true
			continue
		}
		i = j + 1
		for i < len(raw) && isTagSpace(raw[i]) {
			i++
		}
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			q := raw[i]
			i++
			for i < len(raw) && raw[i] != q {
				i++
			}
			i++
			continue
		}
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' {
			i++
		}
	}
	return out
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\f' || c == '\r'
}
