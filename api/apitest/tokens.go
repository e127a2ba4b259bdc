package apitest

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "quickserve-apitest"

// issueAccessToken mints an HS256 access token for email. Caller holds s.mu.
func (s *Server) issueAccessToken(email string) (string, error) {
	now := s.nowTime()
	claims := jwtlib.MapClaims{
		"iss": issuer,
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
		"jti": uuid.New().String(),
		"gen": s.generation, // compared against the server's revocation generation
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// issueRefreshToken creates an opaque refresh token. Caller holds s.mu.
func (s *Server) issueRefreshToken(email string) string {
	token := uuid.New().String()
	s.refreshTokens[token] = email
	return token
}

// verifyAccessToken returns the email an unrevoked, unexpired token was issued to.
func (s *Server) verifyAccessToken(raw string) (string, error) {
	token, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.nowTime),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	gen, _ := claims["gen"].(float64)
	s.mu.Lock()
	current := s.generation
	s.mu.Unlock()
	if int(gen) != current {
		return "", fmt.Errorf("token revoked")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
