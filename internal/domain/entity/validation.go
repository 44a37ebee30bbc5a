package entity

import (
	"net/url"
	"strings"
)

// ValidateFeedURL checks that raw is a usable feed URL: non-empty after
// trimming and an absolute http or https URL. It returns a ValidationError
// describing the first failed rule.
func ValidateFeedURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &ValidationError{Field: "url", Message: "must not be empty"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return &ValidationError{Field: "url", Message: "must be a valid URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "must include a host"}
	}

	return nil
}
