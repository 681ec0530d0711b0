package errors

import "maps"

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a non-fatal error with no cause.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
	}}
}

// WrapError starts a non-fatal error around cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.set(key, value)
	return b
}

// WithPath records the file the failure is about.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext("path", path)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// Build returns the error. Later calls on b do not affect it.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = maps.Clone(b.err.context)
	return &e
}

// ValidationError reports bad flags, options or arguments.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message)
}

// ConfigError reports an unreadable _config.yml or _metadata.yml.
func ConfigError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryConfig, message)
}

// FileSystemError reports a failed read, write or stat.
func FileSystemError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryFileSystem, message)
}

// RuntimeError reports a preview server failure: listening, watching or
// scheduling.
func RuntimeError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryRuntime, message).Fatal()
}

// InternalError reports a failure that no input should be able to cause.
func InternalError(cause error, message string) *ErrorBuilder {
	return WrapError(cause, CategoryInternal, message).Fatal()
}
