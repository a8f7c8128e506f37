package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

var (
	// ErrNotFound is returned when the target resource doesn't exist or is
	// hidden from the token.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for transport failures and any other non-2xx response.
	ErrNetwork = errors.New("network error")
)

// StatusError describes a non-2xx response. It unwraps to one of the
// sentinel errors above so callers can use errors.Is.
type StatusError struct {
	StatusCode int    // HTTP status code
	Message    string // Server-provided message, trimmed
	kind       error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
