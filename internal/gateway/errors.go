package gateway

import "fmt"

// HTTPError is returned for any non-2xx, non-401 response. Body carries the
// best-effort response text; an unreadable body leaves it empty.
type HTTPError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("http error: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("http error: status %d", e.Status)
}

// ParseError is returned when a 2xx response body is not valid JSON for the
// expected shape.
type ParseError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
