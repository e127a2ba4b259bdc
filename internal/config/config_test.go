package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewWithEnvironment_Defaults(t *testing.T) {
	c, err := config.NewWithEnvironment(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/api", c.GetAPIBaseURL())
	require.Equal(t, "QuickServe", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, 15*time.Second, c.GetHTTPTimeout())
	require.Equal(t, 5*time.Second, c.GetLogoutTimeout())
	require.Equal(t, 30*time.Second, c.GetRefreshLeeway())
	require.Equal(t, config.StorageFile, c.GetStorageBackend())
	require.Equal(t, "./data", c.GetDataFolder())
	require.Equal(t, config.DefaultStorageKey, c.GetStorageKey())
}

func TestNewWithEnvironment_Overrides(t *testing.T) {
	c, err := config.NewWithEnvironment(map[string]string{
		"QUICKSERVE_API_URL":      "https://api.quickserve.test/api/",
		"LOG_LEVEL":               "DEBUG",
		"QUICKSERVE_STORAGE":      "sqlite",
		"QUICKSERVE_DATA_DIR":     "/tmp/qs",
		"QUICKSERVE_HTTP_TIMEOUT": "2s",
	})
	require.NoError(t, err)

	require.Equal(t, "https://api.quickserve.test/api", c.GetAPIBaseURL())
	require.Equal(t, "debug", c.GetLogLevel())
	require.Equal(t, config.StorageSQLite, c.GetStorageBackend())
	require.Equal(t, "/tmp/qs", c.GetDataFolder())
	require.Equal(t, 2*time.Second, c.GetHTTPTimeout())
}

func TestNewWithEnvironment_BadDuration(t *testing.T) {
	_, err := config.NewWithEnvironment(map[string]string{"QUICKSERVE_LOGOUT_TIMEOUT": "soon"})
	require.Error(t, err)
}
