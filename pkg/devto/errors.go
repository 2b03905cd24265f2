package devto

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a request that could not complete or returned a non-2xx status.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to %s: status %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s", e.Op)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not the expected JSON shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to %s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NetworkError caused by a 404.
func IsNotFound(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound
}
