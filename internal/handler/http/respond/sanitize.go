package respond

import "regexp"

var (
	// Credentials embedded in DSN-style URLs.
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// Bearer tokens occasionally surface in wrapped HTTP client errors.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`)
)

// SanitizeError masks credentials in an error message before logging.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
