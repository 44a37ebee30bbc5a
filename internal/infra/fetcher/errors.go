// Package fetcher provides full-content retrieval for articles whose
// feed entries carry too little text.
package fetcher

import "errors"

var (
	// ErrInvalidURL indicates the article URL failed validation.
	ErrInvalidURL = errors.New("invalid article URL")

	// ErrPrivateIP indicates the URL resolves to a private or loopback address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrBodyTooLarge indicates the response exceeded the configured size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrExtractionFailed indicates readability could not find article content.
	ErrExtractionFailed = errors.New("content extraction failed")
)
