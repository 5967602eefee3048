package anythingllm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client error taxonomy. Callers branch with the
// Is* helpers; the wrapping APIError carries the user-facing message.
var (
	// ErrTransport covers failures before an HTTP status exists: DNS,
	// connection refused, CORS rejection.
	ErrTransport = errors.New("transport failure")
	// ErrAuthentication covers 401/403 responses.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotFound covers resource-level 404s.
	ErrNotFound = errors.New("resource not found")
	// ErrRequest covers any other non-2xx response.
	ErrRequest = errors.New("request failed")
	// ErrConfiguration covers registry/client drift. Fatal, never recoverable.
	ErrConfiguration = errors.New("configuration error")
)

// APIError is the error type returned by every failing client operation.
type APIError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message without the code prefix.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network-level failure. The message carries
// remediation guidance because the fix (reachability, CORS) differs from
// auth or resource problems.
func NewTransportError(err error) error {
	return &APIError{
		Code:    "TRANSPORT_ERROR",
		Message: fmt.Sprintf("could not reach the server: %v (check the host and port, that the server is running, and that CORS is not blocking the request)", err),
		Err:     fmt.Errorf("%w: %v", ErrTransport, err),
	}
}

// NewAuthenticationError creates an error for a 401/403 response.
func NewAuthenticationError(status int) error {
	return &APIError{
		Code:    "AUTHENTICATION_ERROR",
		Message: "Invalid API Key",
		Status:  status,
		Err:     ErrAuthentication,
	}
}

// NewNotFoundError creates an error naming the missing workspace slug.
func NewNotFoundError(slug string) error {
	return &APIError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("workspace '%s' not found", slug),
		Status:  404,
		Err:     ErrNotFound,
	}
}

// NewRequestError creates an error for a non-2xx response, keeping the
// response body text for diagnostics when the server provided one.
func NewRequestError(status int, statusText, body string) error {
	msg := fmt.Sprintf("HTTP %d %s", status, statusText)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return &APIError{
		Code:    "REQUEST_ERROR",
		Message: msg,
		Status:  status,
		Err:     ErrRequest,
	}
}

// NewConfigurationError creates an error for registry/client drift. This is
// a programming error, distinct from any remote failure.
func NewConfigurationError(message string) error {
	return &APIError{
		Code:    "CONFIGURATION_ERROR",
		Message: message,
		Err:     ErrConfiguration,
	}
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRequest reports whether err is a non-2xx HTTP failure.
func IsRequest(err error) bool {
	return errors.Is(err, ErrRequest)
}

// IsConfiguration reports whether err is registry/client drift.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
