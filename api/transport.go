package api

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Refresher mints a new access token on demand. It reports false when the
// session could not be refreshed (and has been ended).
type Refresher interface {
	RefreshAccessToken(ctx context.Context) bool
}

// refreshingTransport retries a request once after a 401, provided the
// refresher managed to renew the session. The bearer header is set by base on
// every attempt, so the retry carries the new token.
type refreshingTransport struct {
	base      http.RoundTripper
	refresher Refresher
	logger    zerolog.Logger
}

func (t *refreshingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || t.refresher == nil {
		return resp, err
	}

	// A body that cannot be rewound cannot be resent.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}

	if !t.refresher.RefreshAccessToken(req.Context()) {
		t.logger.Debug().Str("path", req.URL.Path).Msg("refresh after 401 failed")
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	t.logger.Debug().Str("path", req.URL.Path).Msg("retrying after token refresh")
	return t.base.RoundTrip(retry)
}
