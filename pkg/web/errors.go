package web

import "fmt"

// APIError is returned for any non-200 response and for 200 responses
// that carry the broker's embedded error envelope.
type APIError struct {
	StatusCode int
	Message    string

	// embedded marks errors delivered in-band with a 200 status.
	embedded bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed: %d, msg: %s", e.StatusCode, e.Message)
}

// Embedded reports whether the error arrived inside a 200 response body.
func (e *APIError) Embedded() bool {
	return e.embedded
}
