package api

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/quickserve-session/internal/errors"
)

// Error is a failed API call. StatusCode is 0 when no response was received.
// Message is the server's human-readable message, when it sent one.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("quickserve api: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("quickserve api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	default:
		return fmt.Sprintf("quickserve api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageFrom extracts the server-supplied message from err, if any. It is
// false for transport failures and for responses without a message.
func MessageFrom(err error) (string, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		return "", false
	}
	return apiErr.Message, true
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return errors.Is(err, errors.ErrUnauthorized)
}

func statusError(status int, message string) *Error {
	cause := errors.ErrRequestFailed
	if status == http.StatusUnauthorized {
		cause = errors.ErrUnauthorized
	}
	return &Error{StatusCode: status, Message: message, Err: cause}
}
