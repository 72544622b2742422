package mee6

// Config holds configuration for the leaderboard API client.
type Config struct {
	// BaseURL is the leaderboard endpoint; the source ID is appended as a path segment.
	BaseURL string `mapstructure:"base_url" default:"https://mee6.xyz/api/plugins/levels/leaderboard"`
	// TimeoutSeconds bounds a single leaderboard request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"leaderboard-payouts/1.0"`
}
