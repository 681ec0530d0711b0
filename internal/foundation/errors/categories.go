package errors

import (
	"maps"
	"slices"
)

// ErrorCategory says what kind of thing went wrong. The CLI maps it to an
// exit code and the preview server to an HTTP status.
type ErrorCategory string

const (
	// Input supplied by the user.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Site sources that failed to render.
	CategoryBuild     ErrorCategory = "build"
	CategoryLayout    ErrorCategory = "layout"
	CategoryComponent ErrorCategory = "component"
	CategoryMarkdown  ErrorCategory = "markdown"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// rendering reports whether c blames the site's own sources.
func (c ErrorCategory) rendering() bool {
	switch c {
	case CategoryBuild, CategoryLayout, CategoryComponent, CategoryMarkdown:
		return true
	default:
		return false
	}
}

// ErrorSeverity separates failures the user can fix from ones that
// deserve a log entry even in quiet mode.
type ErrorSeverity string

const (
	SeverityError ErrorSeverity = "error"
	SeverityFatal ErrorSeverity = "fatal"
)

// ErrorContext holds the structured details of a failure, such as the
// source path or the layout name.
type ErrorContext map[string]any

func (c ErrorContext) set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Keys returns the context keys in sorted order.
func (c ErrorContext) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}
