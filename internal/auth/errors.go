package auth

import (
	"errors"
	"fmt"
)

// Common authentication errors
var (
	// ErrBadCredentials is returned when the backend rejects the username or password.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrNoToken is returned when a login response carries no token.
	ErrNoToken = errors.New("no token received from server")

	// ErrNotLoggedIn is returned when an operation needs a session and none exists.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionExpired is returned when the stored token is past its expiry
	// or the backend answered 401.
	ErrSessionExpired = errors.New("session expired")
)

// AuthError wraps errors with context about the failing auth operation.
type AuthError struct {
	// Op is the operation that failed (e.g., "Login", "Verify").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("auth: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("auth: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *AuthError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newAuthError(op string, err error, details string) *AuthError {
	return &AuthError{Op: op, Err: err, Details: details}
}
