package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig holds the per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// LoadRateLimitConfig reads rate limiting settings from the environment:
// RATELIMIT_ENABLED (default true), RATELIMIT_LIMIT (default 100 requests),
// RATELIMIT_WINDOW (default 1m). Invalid values warn and fall back.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: GetEnvBool("RATELIMIT_ENABLED", true),
		Limit:   GetEnvInt("RATELIMIT_LIMIT", 100),
		Window:  GetEnvDuration("RATELIMIT_WINDOW", time.Minute),
	}

	if cfg.Limit <= 0 {
		slog.Warn("invalid RATELIMIT_LIMIT, using default",
			slog.Int("value", cfg.Limit),
			slog.Int("default", 100))
		cfg.Limit = 100
	}
	if cfg.Window <= 0 {
		slog.Warn("invalid RATELIMIT_WINDOW, using default",
			slog.String("value", cfg.Window.String()),
			slog.String("default", "1m"))
		cfg.Window = time.Minute
	}

	return cfg
}
