// Package errors provides structured error types for condadeps.
//
// Every failure that can stop a run carries a machine-readable [Code] so the
// CLI can name it in its diagnostic and tests can assert on it without
// matching message text.
//
// # Error Codes
//
// Descriptor and parsing failures:
//   - NO_DESCRIPTOR_FOUND: discovery found no env*.yml / env*.yaml file
//   - DESCRIPTOR_NOT_FOUND: a descriptor path was chosen but cannot be read
//   - DESCRIPTOR_PARSE_ERROR: the descriptor is not valid YAML
//   - MISSING_DEPENDENCY_LIST: no top-level "dependencies" sequence
//   - MALFORMED_DEPENDENCY_DECLARATION: an entry is neither a string nor a pip list
//
// Configuration failures:
//   - MISSING_CONFIG: one or more required settings are unset
//   - INVALID_CONFIG: a setting is present but unusable
//
// Submission failures:
//   - NETWORK_ERROR, UNAUTHORIZED, NOT_FOUND
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingDependencies, "no dependencies in %s", path)
//	if errors.Is(err, errors.ErrCodeMissingDependencies) {
//	    // Handle shape error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDescriptorParse, yamlErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Descriptor errors
	ErrCodeNoDescriptorFound    Code = "NO_DESCRIPTOR_FOUND"
	ErrCodeDescriptorNotFound   Code = "DESCRIPTOR_NOT_FOUND"
	ErrCodeDescriptorParse      Code = "DESCRIPTOR_PARSE_ERROR"
	ErrCodeMissingDependencies  Code = "MISSING_DEPENDENCY_LIST"
	ErrCodeMalformedDeclaration Code = "MALFORMED_DEPENDENCY_DECLARATION"

	// Configuration errors
	ErrCodeMissingConfig Code = "MISSING_CONFIG"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// Submission errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeRejected     Code = "SUBMISSION_REJECTED"

	// Output errors
	ErrCodeOutput Code = "OUTPUT_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause, if any) without the code
// prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
