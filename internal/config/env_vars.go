package config

import "strings"

const defaultAPIBaseURL = "http://localhost:8080/api"

type EnvVars struct {
	AppName    string `env:"APP_NAME" envDefault:"QuickServe"`
	Env        string `env:"ENV" envDefault:"DEV"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	APIBaseURL string `env:"QUICKSERVE_API_URL" envDefault:"http://localhost:8080/api"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.LogLevel)
}

// GetAPIBaseURL returns the QuickServe REST root (e.g. "https://api.quickserve.in/api")
// without a trailing slash.
func (e EnvVars) GetAPIBaseURL() string {
	if e.APIBaseURL == "" {
		return defaultAPIBaseURL
	}
	return strings.TrimRight(e.APIBaseURL, "/")
}
