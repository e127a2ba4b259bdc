package errors

import (
	"errors"
	"fmt"
)

// Common error types for the QuickServe session client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoRefreshToken   = errors.New("no refresh token")
	ErrRefreshFailed    = errors.New("token refresh failed")

	// API errors
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRequestFailed     = errors.New("request failed")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownBackend     = errors.New("unknown storage backend")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
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

// New is errors.New, re-exported so callers need only this package.
func New(text string) error {
	return errors.New(text)
}
