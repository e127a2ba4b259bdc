package session

import (
	"context"

	"github.com/jrsteele09/quickserve-session/api"
	"github.com/jrsteele09/quickserve-session/users"
)

// Login authenticates with email and password. It never returns an error:
// failures are reported in the Result and in the session's Error field, and
// leave the credentials untouched.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.set(func(st *Session) {
		st.IsLoading = true
		st.Error = ""
	})

	data, err := s.authAPI.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil || data == nil {
		return s.fail("login", err, LoginFailedMessage)
	}

	s.authenticate(data)
	s.logger.Debug().Str("email", data.User.Email()).Msg("logged in")
	return Result{Success: true}
}

// Signup registers a new account from form (any JSON-encodable value) and
// signs it in. Failure handling matches Login.
func (s *Store) Signup(ctx context.Context, form any) Result {
	s.set(func(st *Session) {
		st.IsLoading = true
		st.Error = ""
	})

	data, err := s.authAPI.Signup(ctx, form)
	if err != nil || data == nil {
		return s.fail("signup", err, SignupFailedMessage)
	}

	s.authenticate(data)
	s.logger.Debug().Str("email", data.User.Email()).Msg("signed up")
	return Result{Success: true}
}

// Logout ends the session locally. If a user is known, the server is told on
// a best-effort basis; that call's outcome is ignored and never delays or
// prevents the local logout.
func (s *Store) Logout() {
	var email string
	s.set(func(st *Session) {
		email = st.User.Email()
		st.loggedOut()
	})

	if email != "" {
		s.notifyLogout(email)
	}
}

// RefreshAccessToken exchanges the refresh token for a new token pair. Any
// failure, including having no refresh token, ends the session and returns
// false. No error message is recorded.
func (s *Store) RefreshAccessToken(ctx context.Context) bool {
	s.mu.Lock()
	refreshToken := s.state.RefreshToken
	s.mu.Unlock()

	if refreshToken == "" {
		s.Logout()
		return false
	}

	data, err := s.authAPI.RefreshToken(ctx, refreshToken)
	if err != nil || data == nil {
		s.logger.Debug().Err(err).Msg("token refresh failed, logging out")
		s.Logout()
		return false
	}

	s.set(func(st *Session) {
		st.AccessToken = data.AccessToken
		st.RefreshToken = data.RefreshToken
		st.User = data.User.Clone()
	})
	return true
}

// ClearError drops the last error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	empty := s.state.Error == ""
	s.mu.Unlock()
	if empty {
		return
	}

	s.set(func(st *Session) {
		st.Error = ""
	})
}

// UpdateUser shallow-merges partial into the current user. With no current
// user the result holds only partial's fields.
func (s *Store) UpdateUser(partial users.User) {
	s.set(func(st *Session) {
		st.User = st.User.Merge(partial)
	})
}

func (s *Store) authenticate(data *api.AuthData) {
	s.set(func(st *Session) {
		st.User = data.User.Clone()
		st.AccessToken = data.AccessToken
		st.RefreshToken = data.RefreshToken
		st.IsAuthenticated = true
		st.IsLoading = false
		st.Error = ""
	})
}

// fail records a login/signup failure, preferring the server's message.
func (s *Store) fail(action string, err error, fallback string) Result {
	message := fallback
	if msg, ok := api.MessageFrom(err); ok {
		message = msg
	}

	s.logger.Debug().Err(err).Str("action", action).Str("message", message).Msg("authentication failed")
	s.set(func(st *Session) {
		st.IsLoading = false
		st.Error = message
	})
	return Result{Success: false, Error: message}
}

func (s *Store) notifyLogout(email string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.logoutTimeout)
		defer cancel()

		if err := s.authAPI.Logout(ctx, email); err != nil {
			s.logger.Debug().Err(err).Str("email", email).Msg("logout notification failed")
		}
	}()
}
