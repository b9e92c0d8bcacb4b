package api

import (
	"fmt"
	"net/http"
)

// NetworkError reports a transport-level failure: the request never
// produced an HTTP response (or the response body could not be read).
type NetworkError struct {
	// Op identifies the attempted call, e.g. "POST /api/auth/login".
	Op string
	// Err is the underlying transport error.
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError reports a non-2xx response from the backend. Code and
// Message carry the server's error body when it parses; otherwise
// Message falls back to the HTTP status text.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("server: %d %s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("server: %d: %s", e.Status, msg)
}

// ValidationError reports a locally rejected input. No network or cache
// call was issued for the failed operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
