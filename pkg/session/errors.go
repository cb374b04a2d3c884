package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates the remote API rejected the
	// username/password pair. Fatal for the current run.
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrRequest is the sentinel matched by RequestError.
	ErrRequest = errors.New("session: request failed")

	// ErrUnknown marks a response the state machine cannot interpret. It
	// is always logged with full context before being surfaced.
	ErrUnknown = errors.New("session: unexpected response")

	// ErrMissingCredentials indicates the manager was built without a
	// username or password.
	ErrMissingCredentials = errors.New("session: missing username or password")
)

// RequestError reports a credential call that ended with a status outside
// the 2xx range.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("session: request failed with status %d: %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return ErrRequest
}
