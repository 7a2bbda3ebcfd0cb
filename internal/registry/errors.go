package registry

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested model or version does not exist.
var ErrNotFound = errors.New("not found")

// APIError wraps a non-2xx response from the registry API.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("registry: %s (status %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("registry: request failed with status %d", e.StatusCode)
}

// IsNotFound reports whether err represents a missing model or version.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAborted reports whether err was caused by page teardown cancelling the
// request. Aborted calls are suppressed by the controllers and never
// surfaced as page errors.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled)
}
