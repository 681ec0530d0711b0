package limits

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsWithDefaults(t *testing.T) {
	b := Bounds{MaxLayoutDepth: 3}.WithDefaults()
	assert.Equal(t, 3, b.MaxLayoutDepth)
	assert.Equal(t, DefaultMaxExpansionPasses, b.MaxExpansionPasses)
	assert.Equal(t, DefaultMaxUnwrapPasses, b.MaxUnwrapPasses)
	assert.Equal(t, Default(), Bounds{}.WithDefaults())
}

func TestExceededErrorMatchesSentinel(t *testing.T) {
	tests := []struct {
		name string
		err  *ExceededError
		want string
	}{
		{"cycle", &ExceededError{Kind: KindLayoutCycle, Chain: []string{"a", "b", "a"}}, "layout cycle a -> b -> a"},
		{"depth", &ExceededError{Kind: KindLayoutDepth, Limit: 2, Chain: []string{"a", "b", "c"}}, "deeper than 2"},
		{"expansion", &ExceededError{Kind: KindExpansion, Limit: 5}, "component_expansion did not settle within 5 passes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("render index.html: %w", tt.err)
			require.True(t, errors.Is(wrapped, ErrCompositionLimitExceeded))
			assert.Contains(t, tt.err.Error(), tt.want)

			var ee *ExceededError
			require.True(t, errors.As(wrapped, &ee))
			assert.Equal(t, tt.err.Kind, ee.Kind)
		})
	}
}
