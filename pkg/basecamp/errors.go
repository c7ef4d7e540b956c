package basecamp

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrAccountRequired  = errors.New("account is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidVersion   = errors.New("version must be a positive integer")
	ErrInvalidRetries   = errors.New("retries must not be negative")
	ErrInvalidTimeout   = errors.New("timeout must be positive")
	ErrNoHostInURL      = errors.New("no host specified in URL")
)

// ConfigurationError reports a missing or invalid construction field. It is
// raised synchronously at construction and never retried.
type ConfigurationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// HTTPError carries a 4xx/5xx response after the retry budget is exhausted.
// It is only surfaced as an error when the client is in fatal mode;
// otherwise the failed result is returned as an ordinary value.
type HTTPError struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, http.StatusText(e.Status))
}

// TransportError reports a connection or timeout failure below the HTTP
// layer. Transport failures are retried up to the configured count.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// SerializationError reports a response body that is not valid JSON. It is
// surfaced to the caller immediately and never retried.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsHTTPError reports whether err carries an HTTP failure status, returning
// the typed error when it does.
func IsHTTPError(err error) (*HTTPError, bool) {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	httpErr, ok := IsHTTPError(err)

	return ok && httpErr.Status == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	httpErr, ok := IsHTTPError(err)

	return ok && httpErr.Status == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	httpErr, ok := IsHTTPError(err)

	return ok && httpErr.Status == http.StatusForbidden
}

// IsTimeout checks if the error is a transport-level timeout.
func IsTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
