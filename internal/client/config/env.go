package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present;
// already-set variables win over the file, so shells keep control.
//
// Recognized variables:
//
//	VENTLINE_API_URL          base URL of the API
//	VENTLINE_REQUEST_TIMEOUT  duration, e.g. "15s"
//	VENTLINE_COUNTRY_CODE     default country code without "+"
//	VENTLINE_DB_FILE          sqlite file path
//	VENTLINE_RESEND_COOLDOWN  duration, e.g. "30s"
//	VENTLINE_LOG_LEVEL        debug|info|warn|error
//	VENTLINE_FEED_PAGE_SIZE   integer
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("VENTLINE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VENTLINE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("VENTLINE_COUNTRY_CODE"); v != "" {
		cfg.DefaultCountryCode = v
	}
	if v := os.Getenv("VENTLINE_DB_FILE"); v != "" {
		cfg.DatabaseFile = v
	}
	if v := os.Getenv("VENTLINE_RESEND_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ResendCooldown = d
		}
	}
	if v := os.Getenv("VENTLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("VENTLINE_FEED_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FeedPageSize = n
		}
	}
}
