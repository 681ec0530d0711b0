package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "not found", err: NewError(CategoryNotFound, "no such page").Build(), expected: 3},
		{name: "config", err: ConfigError(errors.New("yaml"), "bad config").Build(), expected: 7},
		{name: "layout", err: NewError(CategoryLayout, "missing layout").Build(), expected: 11},
		{name: "component", err: NewError(CategoryComponent, "compile failed").Build(), expected: 11},
		{name: "markdown", err: NewError(CategoryMarkdown, "convert failed").Build(), expected: 11},
		{name: "filesystem", err: FileSystemError(errors.New("denied"), "write failed").Build(), expected: 11},
		{name: "runtime", err: RuntimeError(errors.New("in use"), "server failed").Build(), expected: 12},
		{name: "internal", err: InternalError(errors.New("boom"), "boom").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown error"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := WrapError(errors.New("no such layout"), CategoryLayout, "render failed").
		WithContext("path", "index.md").
		WithContext("layout", "base").
		Build()

	quiet := NewCLIErrorAdapter(false, nil)
	require.Equal(t, "layout: render failed: no such layout layout=base path=index.md", quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Equal(t, err.Error(), verbose.FormatError(err))

	require.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	require.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		stderr  string
		logged  bool
		verbose bool
	}{
		{
			name:   "user error is not logged",
			err:    ConfigError(errors.New("yaml: line 2"), "bad config").Build(),
			code:   7,
			stderr: "config: bad config: yaml: line 2\n",
		},
		{
			name:   "fatal error is logged",
			err:    RuntimeError(errors.New("address in use"), "failed to listen").WithContext("port", 4000).Build(),
			code:   12,
			stderr: "runtime: failed to listen: address in use port=4000\n",
			logged: true,
		},
		{
			name:    "verbose logs everything",
			err:     ValidationError("bad flag").Build(),
			code:    2,
			stderr:  "[validation:error] bad flag\n",
			logged:  true,
			verbose: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr, logs bytes.Buffer
			exitCode := -1
			adapter := NewCLIErrorAdapter(tt.verbose, slog.New(slog.NewTextHandler(&logs, nil)))
			adapter.stderr = &stderr
			adapter.exit = func(code int) { exitCode = code }

			adapter.HandleError(tt.err)

			require.Equal(t, tt.code, exitCode)
			require.Equal(t, tt.stderr, stderr.String())
			require.Equal(t, tt.logged, logs.Len() > 0)
		})
	}
}
