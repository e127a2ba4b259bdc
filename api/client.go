package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/quickserve-session/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 4 << 20

	headerRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// AuthAPI is the QuickServe authentication surface the session store drives.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthData, error)
	Signup(ctx context.Context, form any) (*AuthData, error)
	Logout(ctx context.Context, email string) error
	RefreshToken(ctx context.Context, refreshToken string) (*AuthData, error)
	VerifyToken(ctx context.Context) error
}

var _ AuthAPI = (*Client)(nil)

// Client talks to the QuickServe REST API. Auth endpoints are always sent
// without credentials; everything else goes through the authenticated
// transport once Authenticated has been called.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (e.g. an httptest server's client).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero disables the client-side timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL (e.g. "http://localhost:8080/api").
func New(baseURL string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] baseURL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.authClient = c.httpClient
	return c, nil
}

// Authenticated returns a copy of the client whose non-auth requests carry a
// bearer token from source. A 401 triggers one refresh through refresher and
// one retry of the request.
func (c *Client) Authenticated(source oauth2.TokenSource, refresher Refresher) *Client {
	authed := *c
	authed.authClient = &http.Client{
		Transport: &refreshingTransport{
			base: &oauth2.Transport{
				Source: source,
				Base:   c.httpClient.Transport,
			},
			refresher: refresher,
			logger:    c.logger,
		},
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
	}
	return &authed
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthData, error) {
	return c.authRequest(ctx, RouteAuthLogin, creds)
}

func (c *Client) Signup(ctx context.Context, form any) (*AuthData, error) {
	return c.authRequest(ctx, RouteAuthSignup, form)
}

// Logout tells the server the user has signed out. The response body is ignored.
func (c *Client) Logout(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, RouteAuthLogout, false, logoutRequest{Email: email}, nil)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*AuthData, error) {
	return c.authRequest(ctx, RouteAuthRefresh, refreshRequest{RefreshToken: refreshToken})
}

// VerifyToken checks the current access token against GET /auth/me.
func (c *Client) VerifyToken(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, RouteAuthMe, true, nil, nil)
}

func (c *Client) authRequest(ctx context.Context, path string, body any) (*AuthData, error) {
	var resp Response[*AuthData]
	if err := c.do(ctx, http.MethodPost, path, false, body, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
		return nil, fmt.Errorf("[%s] response carries no tokens: %w", path, errors.ErrMalformedResponse)
	}
	return resp.Data, nil
}

// do sends one JSON request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *Error carrying the envelope's message.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("[%s %s] failed to encode request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("[%s %s] failed to build request: %w", method, path, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(headerRequestID, requestID)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	hc := c.httpClient
	if authenticated {
		hc = c.authClient
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return &Error{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope Response[json.RawMessage]
		_ = json.Unmarshal(data, &envelope) // a non-JSON error body just has no message
		return statusError(resp.StatusCode, envelope.Message)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(errors.ErrMalformedResponse, "[%s %s] %v", method, path, err)
	}
	return nil
}
