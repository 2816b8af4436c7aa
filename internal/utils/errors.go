// Package utils provides logging and structured error utilities shared
// across the scraping proxy.
package utils

import (
	"fmt"
	"time"
)

// ErrorCode categorizes failures so the transport layer can map them to
// response statuses without string matching.
type ErrorCode string

const (
	// Request validation
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Upstream fetch
	ErrCodeFetchFailed      ErrorCode = "FETCH_FAILED"
	ErrCodeUpstreamNotFound ErrorCode = "UPSTREAM_NOT_FOUND"

	// Extraction
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeParsingError ErrorCode = "PARSING_ERROR"

	// Configuration
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Generic
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StructuredError carries an error code plus optional context for logging.
type StructuredError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Cause     error                  `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Is matches structured errors by code.
func (e *StructuredError) Is(target error) bool {
	if se, ok := target.(*StructuredError); ok {
		return e.Code == se.Code
	}
	return false
}

// WithContext attaches contextual information to the error.
func (e *StructuredError) WithContext(key string, value interface{}) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a structured error with the given code and message.
func NewError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewErrorf creates a structured error with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...interface{}) *StructuredError {
	return NewError(code, fmt.Sprintf(format, args...))
}

// WrapError wraps an existing error in a structured error.
func WrapError(err error, code ErrorCode, message string) *StructuredError {
	se := NewError(code, message)
	se.Cause = err
	return se
}

// CodeOf extracts the error code from an error chain, or ErrCodeInternal
// when the error carries no code.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			return se.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrCodeInternal
}
