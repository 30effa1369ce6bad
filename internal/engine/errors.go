// Package engine carries the typed error taxonomy and parameter validation
// shared by every analytics component. Parameter and matrix failures are
// raised immediately; solver non-convergence is never an error here, it is
// reported as data on the optimization result.
package engine

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidParameter        = "ERR_INVALID_PARAMETER"
	CodeSingularCovariance      = "ERR_SINGULAR_COVARIANCE"
	CodeInsufficientInstruments = "ERR_INSUFFICIENT_INSTRUMENTS"
	CodeInsufficientData        = "ERR_INSUFFICIENT_DATA"
)

// Error represents an engine-level failure with a stable code.
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Err     error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithParam sets a single error param.
func (e *Error) WithParam(key string, value interface{}) *Error {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithError wraps an underlying error.
func (e *Error) WithError(err error) *Error {
	e.Err = err
	return e
}

// NewError creates a new engine error.
func NewError(code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// InvalidParameter reports a malformed or out-of-range scalar input.
func InvalidParameter(field, message string) *Error {
	return NewError(CodeInvalidParameter, field, message)
}

// InvalidParameterf reports a malformed input with formatting.
func InvalidParameterf(field, format string, a ...interface{}) *Error {
	return InvalidParameter(field, fmt.Sprintf(format, a...))
}

// SingularCovariance reports an infeasible matrix inversion.
func SingularCovariance(message string) *Error {
	return NewError(CodeSingularCovariance, "", message)
}

// InsufficientInstruments reports a portfolio operation on fewer than two
// instruments.
func InsufficientInstruments(n int) *Error {
	return NewError(CodeInsufficientInstruments, "instruments",
		fmt.Sprintf("at least 2 instruments required, got %d", n)).
		WithParam("count", n)
}

// InsufficientData reports a statistical operation with too few observations.
func InsufficientData(message string) *Error {
	return NewError(CodeInsufficientData, "", message)
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
