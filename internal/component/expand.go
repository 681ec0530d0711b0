package component

import (
	"strings"

	"git.home.luguber.info/inful/rovr/internal/limits"
)

// WrapperAttr marks an element to be replaced by its inner markup.
const WrapperAttr = "data-rovr-remove-wrapper"

// Expand replaces every component invocation in markup with its rendered
// output, repeating until no invocation remains.
func (e *Engine) Expand(markup string) (string, error) {
	out, _, err := e.ExpandWithPasses(markup)
	return out, err
}

// ExpandWithPasses is Expand that also returns the number of passes that
// rendered at least one invocation.
func (e *Engine) ExpandWithPasses(markup string) (string, int, error) {
	passes := 0
	for {
		nodes, err := Parse(markup)
		if err != nil {
			return "", passes, err
		}
		n, err := e.expandOutermost(nodes)
		if err != nil {
			return "", passes, err
		}
		if n == 0 {
			return markup, passes, nil
		}
		if passes == e.opts.MaxExpansionPasses {
			return "", passes, &limits.ExceededError{Kind: limits.KindExpansion, Limit: e.opts.MaxExpansionPasses}
		}
		passes++
		markup = Serialize(nodes)
	}
}

// expandOutermost renders the outermost invocations in nodes, in place, and
// returns how many were rendered. Invocations nested inside another one are
// left to a later pass, after the outer component decides where its
// children go.
func (e *Engine) expandOutermost(nodes []*Node) (int, error) {
	count := 0
	for _, n := range nodes {
		if n.Kind != ElementNode {
			continue
		}
		if !n.IsInvocation() {
			c, err := e.expandOutermost(n.Children)
			if err != nil {
				return count, err
			}
			count += c
			continue
		}
		out, err := e.Render(n.TagName, props(n), Serialize(n.Children))
		if err != nil {
			return count, err
		}
		*n = Node{Kind: TextNode, Raw: out}
		count++
	}
	return count, nil
}

func props(n *Node) map[string]any {
	bare := valuelessAttrs(n.Raw)
	out := make(map[string]any, len(n.Attrs))
	for _, a := range n.Attrs {
		if a.Val == "" && bare[a.Key] {
			out[a.Key] = true
			continue
		}
		out[a.Key] = a.Val
	}
	return out
}

// RemoveWrappers replaces each element carrying WrapperAttr="true" with its
// inner markup, repeating until none remain. Markup without such elements is
// returned unchanged.
func RemoveWrappers(markup string, maxPasses int) (string, error) {
	if maxPasses <= 0 {
		maxPasses = limits.DefaultMaxUnwrapPasses
	}
	for pass := 0; ; pass++ {
		if !strings.Contains(markup, WrapperAttr) {
			return markup, nil
		}
		nodes, err := Parse(markup)
		if err != nil {
			return "", err
		}
		nodes, n := unwrap(nodes)
		if n == 0 {
			return markup, nil
		}
		if pass == maxPasses {
			return "", &limits.ExceededError{Kind: limits.KindUnwrap, Limit: maxPasses}
		}
		markup = Serialize(nodes)
	}
}

func unwrap(nodes []*Node) ([]*Node, int) {
	out := make([]*Node, 0, len(nodes))
	count := 0
	for _, n := range nodes {
		if n.Kind != ElementNode {
			out = append(out, n)
			continue
		}
		children, c := unwrap(n.Children)
		count += c
		if v, ok := n.Attr(WrapperAttr); ok && v == "true" {
			out = append(out, children...)
			count++
			continue
		}
		n.Children = children
		out = append(out, n)
	}
	return out, count
}

// PostProcess applies the final markup fixes: when highlight is set, every
// code element nested in a pre gains the class hljs; empty paragraphs are
// dropped.
func PostProcess(markup string, highlight bool) (string, error) {
	if highlight && strings.Contains(markup, "<pre") {
		nodes, err := Parse(markup)
		if err != nil {
			return "", err
		}
		if markCodeBlocks(nodes, false) > 0 {
			markup = Serialize(nodes)
		}
	}
	return strings.ReplaceAll(markup, "<p></p>", ""), nil
}

func markCodeBlocks(nodes []*Node, inPre bool) int {
	count := 0
	for _, n := range nodes {
		if n.Kind != ElementNode {
			continue
		}
		if inPre && n.Name == "code" {
			addClass(n, "hljs")
			count++
		}
		count += markCodeBlocks(n.Children, inPre || n.Name == "pre")
	}
	return count
}

func addClass(n *Node, class string) {
	existing, _ := n.Attr("class")
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	if existing == "" {
		n.SetAttr("class", class)
		return
	}
	n.SetAttr("class", existing+" "+class)
}
