package session

import (
	"context"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"golang.org/x/oauth2"
)

// TokenSource adapts the store to oauth2.TokenSource so an HTTP client can
// attach the current access token. A token within the refresh leeway of its
// expiry is refreshed first.
func (s *Store) TokenSource() oauth2.TokenSource {
	return storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	s := ts.store
	st := s.State()
	if st.AccessToken == "" {
		return nil, errors.ErrNotAuthenticated
	}

	expiry, _ := accessTokenExpiry(st.AccessToken)
	if st.RefreshToken != "" && !expiry.IsZero() && !s.nowTime().Add(s.refreshLeeway).Before(expiry) {
		if !s.RefreshAccessToken(context.Background()) {
			return nil, errors.ErrRefreshFailed
		}
		st = s.State()
		expiry, _ = accessTokenExpiry(st.AccessToken)
	}

	return &oauth2.Token{
		AccessToken:  st.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: st.RefreshToken,
		Expiry:       expiry,
	}, nil
}

// AccessTokenExpiry reports the current access token's exp claim. It is false
// when there is no token or the token is not a JWT with an exp claim.
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	return accessTokenExpiry(s.State().AccessToken)
}

// accessTokenExpiry reads exp without verifying the signature; the client
// cannot verify it and only uses it as a refresh hint.
func accessTokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
