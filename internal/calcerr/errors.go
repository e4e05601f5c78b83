// Package calcerr defines the error taxonomy shared by the calculator
// packages: validation errors (caller-correctable input problems),
// operation errors (domain violations and arithmetic failures during
// evaluation) and configuration errors (invalid setup values).
package calcerr

import "fmt"

// ValidationError reports bad or oversized input. The caller can correct
// the input and retry.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OperationError reports an unknown operation, a division-by-zero-class
// domain violation, or an arithmetic failure during evaluation. Err, when
// set, is the underlying cause.
type OperationError struct {
	Msg string
	Err error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperation builds an OperationError from a format string.
func NewOperation(format string, args ...any) *OperationError {
	return &OperationError{Msg: fmt.Sprintf(format, args...)}
}

// WrapOperation builds an OperationError around an underlying cause.
func WrapOperation(err error, format string, args ...any) *OperationError {
	return &OperationError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// ConfigurationError reports an invalid configuration value. It is fatal
// at construction time.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// NewConfiguration builds a ConfigurationError from a format string.
func NewConfiguration(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
