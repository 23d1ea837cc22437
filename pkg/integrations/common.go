package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RequestTimeout bounds every API request, including reading the body.
// A request that exceeds it fails with [ErrNetwork].
const RequestTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the API answers 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for transport failures (timeouts, DNS, connection
	// resets) and for any status that is neither success, 401, nor 404.
	ErrNetwork = errors.New("network error")
)

// StatusError describes a non-success HTTP response.
// It unwraps to [ErrNotFound], [ErrUnauthorized], or [ErrNetwork].
type StatusError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0 if err does not
// wrap a [StatusError].
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// NewHTTPClient creates an HTTP client with the fixed API request timeout.
func NewHTTPClient(rt http.RoundTripper) *http.Client {
	return &http.Client{Timeout: RequestTimeout, Transport: rt}
}

// URLEncode percent-encodes a single URL path segment.
func URLEncode(s string) string { return url.PathEscape(s) }
