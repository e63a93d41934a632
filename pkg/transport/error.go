package transport

import "fmt"

// APIError is the single failure value propagated through every layer of the
// client. It is returned as an ordinary value so callers can distinguish a
// valid empty result from a failure without unwinding the stack.
//
// StatusCode 0 means no HTTP status was obtained: either a transport-level
// failure (DNS, reset, timeout) or the synthetic retries-exhausted outcome.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Message)
}

// NewTransportError wraps a connection-level failure (no HTTP status obtained).
func NewTransportError(cause error) *APIError {
	return &APIError{StatusCode: 0, Message: fmt.Sprintf("Request failed: %v", cause)}
}

// IsTransportFailure reports whether err is a connection-level failure.
func IsTransportFailure(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 0 && apiErr.Message != RetriesExhaustedMessage
}

// IsUnauthorized reports whether err is a 401 failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 401
}

// IsNotFound reports whether err is a 404 failure.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 404
}

// RetriesExhaustedMessage is the message carried by the synthetic error
// returned when the dispatcher runs out of attempts.
const RetriesExhaustedMessage = "Max retries reached without success."

// IsRetriesExhausted reports whether err is the synthetic retries-exhausted
// outcome.
func IsRetriesExhausted(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == 0 && apiErr.Message == RetriesExhaustedMessage
}
