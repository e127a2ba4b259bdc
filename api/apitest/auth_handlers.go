package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/quickserve-session/users"
)

type contextKey string

const contextKeyEmail contextKey = "email"

type authResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int64      `json:"expiresIn"`
	User         users.User `json:"user"`
}

// AddAccount registers an account directly, bypassing signup.
func (s *Server) AddAccount(email, password, fullName string, role users.RoleType) *Account {
	hash, err := users.HashPassword(password)
	if err != nil {
		panic(err) // bcrypt only fails on passwords over 72 bytes
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccountLocked(&Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Available:    true,
	})
}

func (s *Server) addAccountLocked(a *Account) *Account {
	s.nextID++
	a.ID = s.nextID
	switch a.Role {
	case users.RoleServiceProvider:
		id := 100 + a.ID
		a.ProviderID = &id
	case users.RoleCustomer:
		id := 200 + a.ID
		a.CustomerID = &id
	}
	s.accounts[strings.ToLower(a.Email)] = a
	return a
}

func (a *Account) userInfo() users.User {
	u := users.User{
		users.FieldID:              a.ID,
		users.FieldFullName:        a.FullName,
		users.FieldEmail:           a.Email,
		users.FieldPhone:           a.Phone,
		users.FieldRole:            string(a.Role),
		users.FieldProfilePhotoURL: nil,
		users.FieldProviderID:      nil,
		users.FieldCustomerID:      nil,
	}
	if a.ProviderID != nil {
		u[users.FieldProviderID] = *a.ProviderID
	}
	if a.CustomerID != nil {
		u[users.FieldCustomerID] = *a.CustomerID
	}
	return u
}

// issueSession mints a token pair for a. Caller holds s.mu.
func (s *Server) issueSession(a *Account) (*authResponse, error) {
	access, err := s.issueAccessToken(a.Email)
	if err != nil {
		return nil, err
	}
	return &authResponse{
		AccessToken:  access,
		RefreshToken: s.issueRefreshToken(a.Email),
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         a.userInfo(),
	}, nil
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[strings.ToLower(req.Email)]
	if !ok || !users.CheckPasswordHash(req.Password, a.PasswordHash) {
		writeError(w, http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	resp, err := s.issueSession(a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Login successful", resp)
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       string `json:"fullName"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		Password       string `json:"password"`
		City           string `json:"city"`
		PrimaryService string `json:"primaryService"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[strings.ToLower(req.Email)]; exists {
		writeError(w, http.StatusBadRequest, MsgEmailRegistered)
		return
	}

	// Provider signups carry a primary service; customer signups do not.
	role := users.RoleCustomer
	if req.PrimaryService != "" {
		role = users.RoleServiceProvider
	}

	a := s.addAccountLocked(&Account{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
		City:         req.City,
		Service:      req.PrimaryService,
		Available:    true,
	})

	resp, err := s.issueSession(a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, "Account created successfully", resp)
}

// refreshHandler rotates the refresh token: the presented one stops working.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, MsgRefreshTokenRequired)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeError(w, http.StatusBadRequest, MsgInvalidRefreshToken)
		return
	}
	delete(s.refreshTokens, req.RefreshToken)

	a, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	resp, err := s.issueSession(a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Token refreshed successfully", resp)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	if req.Email != "" {
		s.logouts = append(s.logouts, req.Email)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, "Logged out successfully", nil)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Token is valid", "authenticated")
}

// requireAuth validates the bearer token and stores the caller's email in the context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		email, err := s.verifyAccessToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyEmail, email)
		next(w, r.WithContext(ctx))
	}
}

// requireProvider is requireAuth plus a SERVICE_PROVIDER role check.
func (s *Server) requireProvider(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if a := s.caller(r); a == nil || a.Role != users.RoleServiceProvider {
			writeError(w, http.StatusForbidden, MsgAccessDenied)
			return
		}
		next(w, r)
	})
}

// caller returns the authenticated account for r, or nil.
func (s *Server) caller(r *http.Request) *Account {
	email, _ := r.Context().Value(contextKeyEmail).(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[strings.ToLower(email)]
}
