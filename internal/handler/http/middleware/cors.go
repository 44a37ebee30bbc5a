// Package middleware holds standalone HTTP middleware with its own
// configuration surface.
package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. A single "*" entry allows
	// any origin.
	AllowedOrigins []string

	// AllowedMethods lists HTTP methods permitted in cross-origin requests.
	AllowedMethods []string

	// AllowedHeaders lists request headers permitted in cross-origin requests.
	AllowedHeaders []string

	// MaxAge is how long browsers may cache preflight results, in seconds.
	MaxAge int
}

// DefaultCORSConfig returns a policy suitable for a local browser frontend.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// LoadCORSConfig reads the policy from the environment, falling back to
// defaults. CORS_ALLOWED_ORIGINS is a comma-separated list of origins.
func LoadCORSConfig() CORSConfig {
	cfg := DefaultCORSConfig()

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}
	if methods := os.Getenv("CORS_ALLOWED_METHODS"); methods != "" {
		cfg.AllowedMethods = splitAndTrim(methods)
	}
	if headers := os.Getenv("CORS_ALLOWED_HEADERS"); headers != "" {
		cfg.AllowedHeaders = splitAndTrim(headers)
	}
	if maxAge := os.Getenv("CORS_MAX_AGE"); maxAge != "" {
		if v, err := strconv.Atoi(maxAge); err == nil && v >= 0 {
			cfg.MaxAge = v
		} else {
			slog.Warn("invalid CORS_MAX_AGE, using default",
				slog.String("value", maxAge),
				slog.Int("default", cfg.MaxAge))
		}
	}

	return cfg
}

// CORS returns middleware applying the configured policy. Same-origin
// requests pass through untouched. Disallowed origins get no CORS headers
// and are logged; the browser enforces the block. Preflight OPTIONS
// requests are answered with 204 without reaching the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(config.AllowedOrigins, origin) {
				slog.Warn("cors origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
