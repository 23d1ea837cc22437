// Package errors provides structured error types for gh-analyzer.
//
// Every failure that can end an analysis carries a machine-readable [Code]:
//   - RATE_LIMIT_EXCEEDED: the API quota is exhausted
//   - AUTH_REQUIRED: the API rejected the supplied (or missing) token
//   - REPO_NOT_FOUND: the repository does not exist or is not visible
//   - NETWORK_ERROR: any other status, transport failure, or undecodable body
//
// The CLI and the HTTP server both switch on these codes, so the mapping from
// failure to exit message or HTTP status lives in one place.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRepoNotFound, "repository not found: %s", path)
//	if errors.Is(err, errors.ErrCodeRepoNotFound) {
//	    // Handle missing repository
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Analysis failures
	ErrCodeRateLimited  Code = "RATE_LIMIT_EXCEEDED"
	ErrCodeUnauthorized Code = "AUTH_REQUIRED"
	ErrCodeRepoNotFound Code = "REPO_NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

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

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a [RateLimitedError]
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Error()
	}
	return err.Error()
}

// RateLimitedError reports an exhausted API quota together with the instant
// the quota resets.
type RateLimitedError struct {
	ResetAt time.Time // When the quota resets; zero if unknown
}

// Error implements the error interface.
// The reset time is rendered in local wall-clock time as HH:MM:SS.
func (e *RateLimitedError) Error() string {
	return "API rate limit exceeded. Resets at " + e.ResetAt.Local().Format(time.TimeOnly)
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

// RetryAfter returns how long until the quota resets, relative to now.
// It never returns a negative duration.
func (e *RateLimitedError) RetryAfter(now time.Time) time.Duration {
	return max(e.ResetAt.Sub(now), 0)
}
