// Package limits bounds the recursive and fixpoint stages of rendering.
package limits

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults applied when configuration leaves a bound unset.
const (
	DefaultMaxLayoutDepth     = 32
	DefaultMaxExpansionPasses = 64
	DefaultMaxUnwrapPasses    = 64
)

// ErrCompositionLimitExceeded is matched by every ExceededError.
var ErrCompositionLimitExceeded = errors.New("composition limit exceeded")

// Kind names the bounded operation.
type Kind string

const (
	KindLayoutDepth Kind = "layout_depth"
	KindLayoutCycle Kind = "layout_cycle"
	KindExpansion   Kind = "component_expansion"
	KindUnwrap      Kind = "wrapper_removal"
)

// Bounds holds the configured limits for one build.
type Bounds struct {
	MaxLayoutDepth     int `yaml:"maxLayoutDepth" json:"maxLayoutDepth"`
	MaxExpansionPasses int `yaml:"maxExpansionPasses" json:"maxExpansionPasses"`
	MaxUnwrapPasses    int `yaml:"maxUnwrapPasses" json:"maxUnwrapPasses"`
}

// Default returns the default bounds.
func Default() Bounds {
	return Bounds{
		MaxLayoutDepth:     DefaultMaxLayoutDepth,
		MaxExpansionPasses: DefaultMaxExpansionPasses,
		MaxUnwrapPasses:    DefaultMaxUnwrapPasses,
	}
}

// WithDefaults fills zero or negative fields from Default.
func (b Bounds) WithDefaults() Bounds {
	d := Default()
	if b.MaxLayoutDepth <= 0 {
		b.MaxLayoutDepth = d.MaxLayoutDepth
	}
	if b.MaxExpansionPasses <= 0 {
		b.MaxExpansionPasses = d.MaxExpansionPasses
	}
	if b.MaxUnwrapPasses <= 0 {
		b.MaxUnwrapPasses = d.MaxUnwrapPasses
	}
	return b
}

// ExceededError reports a bound that was hit.
type ExceededError struct {
	Kind  Kind
	Limit int
	// Chain lists the layout names visited, when relevant.
	Chain []string
}

func (e *ExceededError) Error() string {
	switch e.Kind {
	case KindLayoutCycle:
		return fmt.Sprintf("%s: layout cycle %s", ErrCompositionLimitExceeded, strings.Join(e.Chain, " -> "))
	case KindLayoutDepth:
		return fmt.Sprintf("%s: layout chain deeper than %d (%s)", ErrCompositionLimitExceeded, e.Limit, strings.Join(e.Chain, " -> "))
	default:
		return fmt.Sprintf("%s: %s did not settle within %d passes", ErrCompositionLimitExceeded, e.Kind, e.Limit)
	}
}

// Is makes errors.Is(err, ErrCompositionLimitExceeded) hold.
func (e *ExceededError) Is(target error) bool {
	return target == ErrCompositionLimitExceeded
}
