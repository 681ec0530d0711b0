// Package component compiles component definitions and expands component
// invocations found in markup.
//
// A component is an html/template definition named after its source file. It
// is invoked from markup by an element whose tag starts with an uppercase
// letter, e.g. <Greeting name="Sam"/>. The definition executes with:
//
//	.Props     attributes of the invoking element (keys lowercased, bare attributes are true)
//	.Children  inner markup of the invoking element, inserted verbatim
//	.Site      site-wide metadata
package component

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"git.home.luguber.info/inful/rovr/internal/limits"
)

// Dir is the source directory holding component definitions.
const Dir = "_components"

var sourceExts = map[string]bool{".html": true, ".tmpl": true, ".gohtml": true}

// IsComponentPath reports whether a relative slash path is a component source.
func IsComponentPath(rel string) bool {
	return strings.HasPrefix(rel, Dir+"/") && sourceExts[path.Ext(rel)]
}

// NameFromPath returns the component name for a relative path.
func NameFromPath(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Definition is the source of one component.
type Definition struct {
	Name   string
	Source string
}

// Context holds values injected into every invocation.
type Context struct {
	Site map[string]any
}

// Options bound the fixpoint loops of an Engine.
type Options struct {
	MaxExpansionPasses int
	MaxUnwrapPasses    int
}

// Engine renders component invocations. It is created once per build and is
// safe for concurrent use.
type Engine struct {
	set   *template.Template
	names map[string]bool
	ctx   Context
	opts  Options
}

type invocation struct {
	Props    map[string]any
	Children template.HTML
	Site     map[string]any
}

// Compile parses every definition as one template set. Later definitions
// with a duplicate name replace earlier ones.
func Compile(defs []Definition, ctx Context, opts Options) (*Engine, error) {
	if opts.MaxExpansionPasses <= 0 {
		opts.MaxExpansionPasses = limits.DefaultMaxExpansionPasses
	}
	if opts.MaxUnwrapPasses <= 0 {
		opts.MaxUnwrapPasses = limits.DefaultMaxUnwrapPasses
	}
	if ctx.Site == nil {
		ctx.Site = map[string]any{}
	}

	order := make([]string, 0, len(defs))
	byName := make(map[string]string, len(defs))
	for _, d := range defs {
		if _, seen := byName[d.Name]; !seen {
			order = append(order, d.Name)
		}
		byName[d.Name] = d.Source
	}

	var unit strings.Builder
	for _, name := range order {
		unit.WriteString(wrapDefinition(name, byName[name]))
	}

	set, err := template.New("components").Funcs(funcMap()).Parse(unit.String())
	if err != nil {
		return nil, locateCompileError(order, byName, err)
	}

	names := make(map[string]bool, len(order))
	for _, name := range order {
		names[name] = true
	}
	return &Engine{set: set, names: names, ctx: ctx, opts: opts}, nil
}

func wrapDefinition(name, source string) string {
	return fmt.Sprintf("{{define %q}}%s{{end}}", name, source)
}

// locateCompileError re-parses each definition on its own to name the one
// that broke the unit.
func locateCompileError(order []string, sources map[string]string, unitErr error) error {
	for _, name := range order {
		_, err := template.New(name).Funcs(funcMap()).Parse(wrapDefinition(name, sources[name]))
		if err != nil {
			return &CompileError{Name: name, Err: err}
		}
	}
	return &CompileError{Err: unitErr}
}

// Has reports whether a component with name was compiled.
func (e *Engine) Has(name string) bool { return e.names[name] }

// Len returns the number of compiled components.
func (e *Engine) Len() int { return len(e.names) }

// Render executes the component name with props and children.
func (e *Engine) Render(name string, props map[string]any, children string) (string, error) {
	if !e.names[name] {
		return "", &UnknownComponentError{Name: name}
	}
	if props == nil {
		props = map[string]any{}
	}
	var buf bytes.Buffer
	err := e.set.ExecuteTemplate(&buf, name, invocation{
		Props:    props,
		Children: template.HTML(children), //nolint:gosec // children come from trusted source files
		Site:     e.ctx.Site,
	})
	if err != nil {
		return "", &RenderError{Name: name, Err: err}
	}
	return buf.String(), nil
}
