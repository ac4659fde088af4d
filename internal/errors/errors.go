// Package errors provides the error types returned by the completion client
// and the classification used by the conversation controller.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingCredential = errors.New("API token is not configured")
	ErrInvalidResponse   = errors.New("invalid response format")
)

// Kind identifies which fallback path a failure takes.
type Kind int

const (
	// KindNone means the error is nil.
	KindNone Kind = iota
	// KindMissingCredential means no API token was configured.
	KindMissingCredential
	// KindUpstream covers network errors, non-2xx responses and malformed payloads.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredential:
		return "missing_credential"
	case KindUpstream:
		return "upstream_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// APIError represents a non-2xx response from the completion API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is matches ErrInvalidResponse and other ParseErrors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsAPIError reports whether err wraps an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// GetStatusCode returns the HTTP status of a wrapped APIError, or 0
func GetStatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Classify maps an error onto the failure taxonomy.
// Anything that is not a missing credential is an upstream failure.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	default:
		return KindUpstream
	}
}
