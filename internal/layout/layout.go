// Package layout registers page skeletons and composes views into them.
package layout

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/rovr/internal/logfields"
)

// Dir is the source directory holding layouts.
const Dir = "_layouts"

// Layout is a named skeleton with a content placeholder.
type Layout struct {
	Name     string
	Body     string
	Metadata map[string]any
	// Source is the relative path the layout was loaded from.
	Source string
}

// IsLayoutPath reports whether a relative slash path is a layout source.
func IsLayoutPath(rel string) bool {
	return strings.HasPrefix(rel, Dir+"/") && path.Ext(rel) == ".html"
}

// NameFromPath returns the layout name for a relative path (basename without extension).
func NameFromPath(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Registry maps layout names to layouts. Later registrations replace earlier ones.
type Registry struct {
	layouts map[string]Layout
	logger  *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{layouts: map[string]Layout{}, logger: logger}
}

// Register adds l, replacing any layout with the same name.
func (r *Registry) Register(l Layout) {
	if prev, ok := r.layouts[l.Name]; ok {
		r.logger.Debug("Layout overwritten",
			logfields.Layout(l.Name),
			slog.String("previous", prev.Source),
			logfields.Path(l.Source))
	}
	r.layouts[l.Name] = l
}

// Get returns the layout registered under name.
func (r *Registry) Get(name string) (Layout, bool) {
	l, ok := r.layouts[name]
	return l, ok
}

// Names returns the registered layout names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.layouts))
	for n := range r.layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int { return len(r.layouts) }

// MissingLayoutError reports a reference to an unregistered layout.
type MissingLayoutError struct {
	Name string
	// Referrer is the layout holding the reference; empty when the
	// reference came from the page being rendered.
	Referrer string
}

func (e *MissingLayoutError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("layout %q not found", e.Name)
	}
	return fmt.Sprintf("layout %q not found (referenced by layout %q)", e.Name, e.Referrer)
}
