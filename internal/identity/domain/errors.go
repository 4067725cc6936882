package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the stored token is missing or the
	// backend rejected it. Callers tear the session down on this.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrWrongPassword is a profile-update 401 whose error message
	// points at the current password rather than the token. The
	// session survives; only the password attempt failed.
	ErrWrongPassword = errors.New("current password is incorrect")
)

// APIError is a non-2xx backend response with a readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TransportError is a network failure, timeout, or unreadable
// response. It never reflects a decision made by the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
