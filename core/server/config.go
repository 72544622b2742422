package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// RunTimeoutSeconds bounds a single payout run triggered over HTTP.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"300"`
}

// ListenAddr returns the address passed to the HTTP listener.
func (c Config) ListenAddr() string {
	return ":" + c.Port
}

// RunTimeout returns the per-run deadline, falling back to five minutes.
func (c Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
