// Package feed provides use cases for fetching, normalizing, and merging
// RSS/Atom feeds. It implements the single-feed pipeline (fetch, parse,
// extract, cap) and the multi-feed merge (fan-out, failure isolation,
// shuffle) on top of a pluggable fetcher and extractor.
package feed

import "errors"

// Sentinel errors for feed use case operations.
var (
	// ErrURLRequired indicates that the caller did not supply a feed URL.
	// It is surfaced before any network access is attempted.
	ErrURLRequired = errors.New("URL parameter is required")

	// ErrFeedUnavailable indicates that fetching or parsing a single feed
	// failed. The underlying cause is logged, never exposed to callers.
	ErrFeedUnavailable = errors.New("failed to fetch or parse the RSS feed")

	// ErrNoArticles indicates that every feed in a multi-feed request
	// failed. It is raised only after all fan-out fetches have settled.
	ErrNoArticles = errors.New("no articles found from any feed")
)
