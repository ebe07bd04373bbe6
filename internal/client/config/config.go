// Package config loads runtime settings for the ventline CLI.
//
// Sources are layered, later ones overriding earlier ones:
// defaults -> environment (with optional .env file) -> JSON file -> flags.
package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	// APIBaseURL is the root of the vent platform API.
	APIBaseURL string
	// RequestTimeout bounds every HTTP round trip.
	RequestTimeout time.Duration
	// DefaultCountryCode is prepended to phone numbers entered without "+".
	DefaultCountryCode string
	// DatabaseFile is the sqlite file holding the persisted session token.
	DatabaseFile string
	// ResendCooldown is the local lockout window after a resend-OTP request.
	ResendCooldown time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// FeedPageSize is how many vents one feed page shows.
	FeedPageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 15 * time.Second
	c.DefaultCountryCode = "1"
	c.DatabaseFile = "ventline.db"
	c.ResendCooldown = 30 * time.Second
	c.LogLevel = "info"
	c.FeedPageSize = 5
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if one was named), and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
