package errors

import (
	"errors"
	"fmt"
)

// Common error types for the client and login/consent apps
var (
	// Request errors
	ErrMissingParameter    = errors.New("missing parameter")
	ErrInvalidCSRFToken    = errors.New("invalid csrf token")
	ErrAuthorizationDenied = errors.New("authorization denied")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Authorization request state errors
	ErrStateMismatch = errors.New("state mismatch")
	ErrStateExpired  = errors.New("state expired")

	// Authorization server errors
	ErrUpstream            = errors.New("upstream error")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeExpired    = errors.New("challenge expired")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
