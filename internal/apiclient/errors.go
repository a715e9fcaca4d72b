package apiclient

import "fmt"

// APIError is an error payload reported by the backend ({"error": "..."} with a non-2xx status).
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s rejected (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
}

// TransportError covers everything that is not a server-reported error:
// unreachable host, unexpected status without an error payload, or a malformed body.
type TransportError struct {
	Operation  string
	StatusCode int // 0 when no response was received
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Operation, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
