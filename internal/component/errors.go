package component

import "fmt"

// CompileError names the definition that failed to parse.
type CompileError struct {
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("compile components: %v", e.Err)
	}
	return fmt.Sprintf("compile component %q: %v", e.Name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// UnknownComponentError reports an invocation with no matching definition.
type UnknownComponentError struct {
	Name string
	// Path is the file being rendered, when known.
	Path string
}

func (e *UnknownComponentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown component %q", e.Name)
	}
	return fmt.Sprintf("unknown component %q in %s", e.Name, e.Path)
}

// RenderError wraps a failure while executing a component.
type RenderError struct {
	Name string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render component %q: %v", e.Name, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
