package layout

import (
	"slices"

	"git.home.luguber.info/inful/rovr/internal/limits"
	"git.home.luguber.info/inful/rovr/internal/view"
)

// Composer resolves layout chains against a Registry.
type Composer struct {
	registry *Registry
	maxDepth int
}

// NewComposer returns a Composer bounded by maxDepth nested layouts.
func NewComposer(registry *Registry, maxDepth int) *Composer {
	if maxDepth <= 0 {
		maxDepth = limits.DefaultMaxLayoutDepth
	}
	return &Composer{registry: registry, maxDepth: maxDepth}
}

// Compose wraps v in the layout called name, following each layout's own
// `layout` field up the chain. Metadata merges child-wins at every step.
func (c *Composer) Compose(v view.View, name string) (view.View, error) {
	lv, err := c.resolve(name, "", nil)
	if err != nil {
		return v, err
	}
	return v.ApplyLayout(lv), nil
}

func (c *Composer) resolve(name, referrer string, chain []string) (view.View, error) {
	if slices.Contains(chain, name) {
		return view.View{}, &limits.ExceededError{
			Kind:  limits.KindLayoutCycle,
			Limit: c.maxDepth,
			Chain: append(slices.Clone(chain), name),
		}
	}
	chain = append(chain, name)
	if len(chain) > c.maxDepth {
		return view.View{}, &limits.ExceededError{
			Kind:  limits.KindLayoutDepth,
			Limit: c.maxDepth,
			Chain: slices.Clone(chain),
		}
	}

	l, ok := c.registry.Get(name)
	if !ok {
		return view.View{}, &MissingLayoutError{Name: name, Referrer: referrer}
	}

	lv := view.New(l.Body, l.Metadata)
	parent := lv.LayoutName()
	if parent == "" {
		return lv, nil
	}
	pv, err := c.resolve(parent, name, chain)
	if err != nil {
		return view.View{}, err
	}
	return lv.ApplyLayout(pv), nil
}
