// Package session holds the client-side authentication state for the
// QuickServe API: who is signed in, their tokens, and the transient
// loading/error flags a UI renders. The persisted part of the state survives
// process restarts through a storage.KeyValue.
package session

import (
	"github.com/jrsteele09/quickserve-session/users"
)

// Fallback messages used when the API gives no reason for a failure.
const (
	LoginFailedMessage  = "Login failed. Please try again."
	SignupFailedMessage = "Signup failed. Please try again."
)

// Session is a snapshot of the authentication state. Empty strings and a nil
// User mean "absent".
type Session struct {
	User            users.User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool // true only while Login or Signup is in flight
	Error           string
}

// Result is what Login and Signup report. Error is set only on failure.
type Result struct {
	Success bool
	Error   string
}

func (s Session) clone() Session {
	s.User = s.User.Clone()
	return s
}

// loggedOut clears the credentials and the error. IsLoading is left alone.
func (s *Session) loggedOut() {
	s.User = nil
	s.AccessToken = ""
	s.RefreshToken = ""
	s.IsAuthenticated = false
	s.Error = ""
}
