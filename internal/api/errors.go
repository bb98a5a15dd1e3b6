package api

import (
	"fmt"
	"time"
)

// TimeoutError means the run exceeded its bounded duration before the
// server resolved it. The in-flight request has already been cancelled.
type TimeoutError struct {
	Bound time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("simulation timed out after %s", e.Bound)
}

// RequestError is a non-success HTTP status from the server. Body is the
// response body verbatim; it is shown to the user as-is.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return e.Body
}

// NetworkError is a transport-level failure before any HTTP status was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NegotiationError scopes a failed negotiation exchange. It never affects
// the rest of the results view or closes the run.
type NegotiationError struct {
	Err error
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("negotiation failed: %v", e.Err)
}

func (e *NegotiationError) Unwrap() error { return e.Err }
