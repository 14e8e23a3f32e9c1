// Package errors provides structured error types for shatter.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three groups:
//   - Input validation (INVALID_*, UNSUPPORTED_TYPE, FILE_TOO_LARGE): rejected
//     before an image reaches the simulation core
//   - Core failures (SURFACE_UNAVAILABLE, ENCODER_ABORTED, ENCODE_FAILED):
//     propagated up as a failed operation, never partial output
//   - INTERNAL_ERROR for anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOption, "gravity out of range: %v", g)
//	if errors.Is(err, errors.ErrCodeInvalidOption) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidOption   Code = "INVALID_OPTION"
	ErrCodeUnsupportedType Code = "UNSUPPORTED_TYPE"
	ErrCodeFileTooLarge    Code = "FILE_TOO_LARGE"
	ErrCodeDecode          Code = "DECODE_FAILED"

	// Rendering and encoding errors
	ErrCodeSurface        Code = "SURFACE_UNAVAILABLE"
	ErrCodeEncoderAborted Code = "ENCODER_ABORTED"
	ErrCodeEncode         Code = "ENCODE_FAILED"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is an input validation failure, i.e. one
// that should be reported to the user at the boundary rather than treated as
// a failed render.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidOption,
		ErrCodeUnsupportedType, ErrCodeFileTooLarge:
		return true
	}
	return false
}
