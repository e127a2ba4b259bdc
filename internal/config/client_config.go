package config

import "time"

type ClientConfig interface {
	GetHTTPTimeout() time.Duration
	GetLogoutTimeout() time.Duration
	GetRefreshLeeway() time.Duration
}

type Client struct {
	HTTPTimeout   time.Duration `env:"QUICKSERVE_HTTP_TIMEOUT" envDefault:"15s"`
	LogoutTimeout time.Duration `env:"QUICKSERVE_LOGOUT_TIMEOUT" envDefault:"5s"`
	RefreshLeeway time.Duration `env:"QUICKSERVE_REFRESH_LEEWAY" envDefault:"30s"`
}

var _ ClientConfig = Client{}

func (c Client) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}

// GetLogoutTimeout bounds the best-effort server notification sent on logout.
func (c Client) GetLogoutTimeout() time.Duration {
	return c.LogoutTimeout
}

// GetRefreshLeeway is how close to expiry an access token may get before the
// token source refreshes it.
func (c Client) GetRefreshLeeway() time.Duration {
	return c.RefreshLeeway
}
