// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a tender file parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeValidation indicates a structural sequence validation error
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeUnresolvedOperand indicates a parameter key missing from the table
	TypeUnresolvedOperand Type = "UNRESOLVED_OPERAND"

	// TypeInvalidReference indicates a step reference outside the computed range
	TypeInvalidReference Type = "INVALID_REFERENCE"

	// TypeDivisionByZero indicates a divide action with a zero operand
	TypeDivisionByZero Type = "DIVISION_BY_ZERO"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// UnresolvedOperand creates an error for a parameter key absent from the table
func UnresolvedOperand(key string) *Error {
	return Newf(TypeUnresolvedOperand, "parameter %q is not defined", key)
}

// InvalidReference creates an error for a step index outside the computed range
func InvalidReference(index int) *Error {
	return Newf(TypeInvalidReference, "step reference %d is out of range", index)
}

// DivisionByZero creates an error for a divide action with a zero operand
func DivisionByZero() *Error {
	return New(TypeDivisionByZero, "division by zero")
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
