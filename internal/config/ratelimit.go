package config

import "time"

// RateLimitConfig controls the fixed-window limiter guarding the login
// endpoint against credential stuffing.  The limiter needs Redis; without a
// client it disables itself.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // attempts allowed per window
	Window  time.Duration // window length
	Prefix  string        // key namespace
}

// LoadRateLimitConfig reads environment variables with defaults sized for a
// human typing a password, not an API client.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: getenv("LOGIN_RATELIMIT_ENABLED", "true") == "true",
		Limit:   atoi(getenv("LOGIN_RATELIMIT_LIMIT", "10")),
		Window:  parseDur(getenv("LOGIN_RATELIMIT_WINDOW", "1m")),
		Prefix:  getenv("LOGIN_RATELIMIT_PREFIX", "content:rl"),
	}
}
