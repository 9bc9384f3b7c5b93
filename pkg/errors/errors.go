// Package errors defines the typed error taxonomy for the canvas core.
//
// Every fallible operation in the domain surfaces one of these error
// types synchronously; nothing in the core panics on malformed input.
package errors

import (
	"fmt"

	"loom/domain/core/valueobjects"
)

// ErrorType represents the category of canvas error
type ErrorType string

const (
	// ErrorTypeResourceLimit indicates a cardinality cap or coordinate
	// bound was hit at admission time
	ErrorTypeResourceLimit ErrorType = "RESOURCE_LIMIT_EXCEEDED"

	// ErrorTypeNotFound indicates an operation referenced a node that is
	// not present in the canvas
	ErrorTypeNotFound ErrorType = "NODE_NOT_FOUND"

	// ErrorTypeValidation indicates input that violates a domain rule
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeSecurity indicates a rejected configuration or protocol
	// input (path escape, oversized payload)
	ErrorTypeSecurity ErrorType = "SECURITY_VIOLATION"

	// ErrorTypeParse indicates unparseable external input
	ErrorTypeParse ErrorType = "PARSE_ERROR"
)

// CanvasError is the error type returned by all fallible canvas operations
type CanvasError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	NodeID  valueobjects.NodeID    `json:"node_id,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *CanvasError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *CanvasError) Unwrap() error {
	return e.Cause
}

// Is matches errors by type, so callers can use errors.Is with a
// sentinel constructed from the same constructor
func (e *CanvasError) Is(target error) bool {
	t, ok := target.(*CanvasError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithCause attaches an underlying error
func (e *CanvasError) WithCause(cause error) *CanvasError {
	e.Cause = cause
	return e
}

// WithDetail attaches a named detail to the error
func (e *CanvasError) WithDetail(key string, value interface{}) *CanvasError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewResourceLimitError creates an error for a violated resource limit.
// Callers must treat this as recoverable: reject the operation, do not crash.
func NewResourceLimitError(message string) *CanvasError {
	return &CanvasError{
		Type:    ErrorTypeResourceLimit,
		Message: message,
	}
}

// NewNodeNotFoundError creates an error naming the missing node
func NewNodeNotFoundError(id valueobjects.NodeID) *CanvasError {
	return &CanvasError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("node not found: %s", id),
		NodeID:  id,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *CanvasError {
	return &CanvasError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewSecurityError creates a security violation error
func NewSecurityError(message string) *CanvasError {
	return &CanvasError{
		Type:    ErrorTypeSecurity,
		Message: message,
	}
}

// NewParseError creates a parse error for external input
func NewParseError(message string) *CanvasError {
	return &CanvasError{
		Type:    ErrorTypeParse,
		Message: message,
	}
}

// IsResourceLimit reports whether err is a resource limit error
func IsResourceLimit(err error) bool {
	return typeOf(err) == ErrorTypeResourceLimit
}

// IsNodeNotFound reports whether err is a missing-node error
func IsNodeNotFound(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return typeOf(err) == ErrorTypeValidation
}

// IsSecurity reports whether err is a security violation
func IsSecurity(err error) bool {
	return typeOf(err) == ErrorTypeSecurity
}

// NodeIDFromError extracts the missing node id from a not-found error.
// The second return is false for any other error.
func NodeIDFromError(err error) (valueobjects.NodeID, bool) {
	ce, ok := err.(*CanvasError)
	if !ok || ce.Type != ErrorTypeNotFound {
		return 0, false
	}
	return ce.NodeID, true
}

func typeOf(err error) ErrorType {
	ce, ok := err.(*CanvasError)
	if !ok {
		return ""
	}
	return ce.Type
}
