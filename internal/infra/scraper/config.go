package scraper

import "time"

// Config is the immutable parser configuration constructed at startup and
// passed into the fetcher. It names the extension namespaces consulted for
// media and rich-content fields instead of burying them in globals.
type Config struct {
	// UserAgent is sent on every outbound feed request.
	UserAgent string

	// Timeout bounds a single feed fetch. A feed that exceeds it fails
	// alone; the merge layer treats the timeout like any other fetch error.
	Timeout time.Duration

	// MediaNamespace is the extension namespace holding media:content and
	// media:thumbnail candidates.
	MediaNamespace string

	// ContentNamespace is the extension namespace holding the
	// content:encoded rich body.
	ContentNamespace string

	// PerHostRPS and PerHostBurst bound outbound request rate per feed
	// host. Zero RPS disables the limiter.
	PerHostRPS   float64
	PerHostBurst int
}

// DefaultConfig returns the standard fetcher configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent:        "rsstok/1.0 (+https://github.com/rsstok/rsstok)",
		Timeout:          10 * time.Second,
		MediaNamespace:   "media",
		ContentNamespace: "content",
		PerHostRPS:       2,
		PerHostBurst:     4,
	}
}
