// Package apitest runs an in-process QuickServe backend for tests and local
// development. It implements the auth, provider and public endpoints with the
// same envelope and error messages as the real API.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/jrsteele09/quickserve-session/users"
	"github.com/rs/zerolog"
)

// Error messages returned by the QuickServe backend.
const (
	MsgInvalidCredentials   = "Invalid email or password"
	MsgEmailRegistered      = "Email is already registered"
	MsgInvalidRefreshToken  = "Invalid or expired refresh token"
	MsgRefreshTokenRequired = "Refresh token is required"
	MsgUnauthorized         = "Full authentication is required to access this resource"
	MsgAccessDenied         = "Access denied"
	MsgBadRequest           = "Invalid request body"
)

const basePath = "/api"

// Account is a user registered with the fake backend.
type Account struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         users.RoleType
	ProviderID   *int64
	CustomerID   *int64
	City         string
	Service      string
	Available    bool
}

type forcedFailure struct {
	status  int
	message string
}

// Server is a fake QuickServe API. Use URL() as the client's base URL.
type Server struct {
	srv *httptest.Server

	mu            sync.Mutex
	accounts      map[string]*Account // email -> account
	refreshTokens map[string]string   // refresh token -> email
	nextID        int64
	generation    int // bumped by RevokeAccessTokens
	failures      map[string][]forcedFailure
	calls         map[string]int
	logouts       []string

	secret    []byte
	accessTTL time.Duration
	nowTime   func() time.Time
	logger    zerolog.Logger
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

// WithAccessTokenTTL sets the lifetime of minted access tokens.
func WithAccessTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.accessTTL = d
	}
}

// WithLogger logs every request to logger. The default logs nothing.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithNowTime sets the clock used for token issue and validation.
func WithNowTime(now func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = now
	}
}

// TestingT is the part of testing.TB that NewServer needs. Taking it instead
// of testing.TB keeps the testing package out of binaries that use Start.
type TestingT interface {
	Helper()
	Cleanup(func())
}

// NewServer starts a fake backend that is closed when the test ends.
func NewServer(t TestingT, options ...Option) *Server {
	t.Helper()

	s := newServer(options...)
	t.Cleanup(s.Close)
	return s
}

// Start runs a fake backend outside of a test; the caller must Close it.
func Start(options ...Option) *Server {
	return newServer(options...)
}

func newServer(options ...Option) *Server {
	s := &Server{
		accounts:      make(map[string]*Account),
		refreshTokens: make(map[string]string),
		failures:      make(map[string][]forcedFailure),
		calls:         make(map[string]int),
		secret:        []byte("quickserve-apitest-secret"),
		accessTTL:     15 * time.Minute,
		nowTime:       time.Now,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.srv = httptest.NewServer(s.routes())
	return s
}

// URL is the API base URL, including the /api prefix.
func (s *Server) URL() string {
	return s.srv.URL + basePath
}

// Client returns an HTTP client configured for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

func (s *Server) Close() {
	s.srv.Close()
}

// FailNext makes the next request to route (e.g. "/auth/login") answer with
// status and message instead of being handled. Calls queue up.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], forcedFailure{status: status, message: message})
}

// Calls counts requests received for route, including forced failures.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Logouts lists the emails received by /auth/logout, in order.
func (s *Server) Logouts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logouts...)
}

// RevokeAccessTokens invalidates every access token issued so far; refresh
// tokens stay valid.
func (s *Server) RevokeAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = make(map[string]string)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, http.MethodPost, "/auth/login", s.loginHandler)
	s.handle(mux, http.MethodPost, "/auth/signup", s.signupHandler)
	s.handle(mux, http.MethodPost, "/auth/refresh", s.refreshHandler)
	s.handle(mux, http.MethodPost, "/auth/logout", s.logoutHandler)
	s.handle(mux, http.MethodGet, "/auth/me", s.requireAuth(s.meHandler))

	s.handle(mux, http.MethodGet, "/provider/profile", s.requireProvider(s.profileHandler))
	s.handle(mux, http.MethodPut, "/provider/profile", s.requireProvider(s.updateProfileHandler))
	s.handle(mux, http.MethodGet, "/provider/stats", s.requireProvider(s.statsHandler))
	s.handle(mux, http.MethodGet, "/provider/bookings", s.requireProvider(s.bookingsHandler))
	s.handle(mux, http.MethodPatch, "/provider/availability", s.requireProvider(s.availabilityHandler))

	s.handle(mux, http.MethodGet, "/public/categories", s.categoriesHandler)
	s.handle(mux, http.MethodGet, "/public/providers", s.providersHandler)

	return mux
}

// handle registers route under the /api prefix, counting calls and serving
// any queued forced failure first.
func (s *Server) handle(mux *http.ServeMux, method, route string, next http.HandlerFunc) {
	mux.HandleFunc(method+" "+basePath+route, chainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		var forced *forcedFailure
		if queue := s.failures[route]; len(queue) > 0 {
			forced = &queue[0]
			s.failures[route] = queue[1:]
		}
		s.mu.Unlock()

		if forced != nil {
			writeError(w, forced.status, forced.message)
			return
		}
		next(w, r)
	}, s.loggingMiddleware, s.recoverMiddleware))
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Message: message, Data: data})
}

// writeError answers with the backend's error envelope. An empty message
// produces a body without one.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}
