// Package errors provides the classified error primitives used across rovr.
//
// A ClassifiedError carries a category, a severity and structured context so the
// CLI and the preview server can pick an exit code or HTTP status without string
// matching. Domain packages keep their own typed errors (a missing layout, an
// unknown component) and the site build wraps them at the service boundary:
//
//	err := errors.WrapError(cause, errors.CategoryLayout, "render failed").
//		WithPath(item.SourcePath).
//		WithContext("layout", name).
//		Build()
//
// Edge failures use the constructors: ConfigError, FileSystemError,
// RuntimeError, InternalError and ValidationError.
package errors
