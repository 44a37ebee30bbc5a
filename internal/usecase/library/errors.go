package library

import "errors"

var (
	// ErrLinkRequired is returned when an operation is missing the
	// article link that identifies the entry.
	ErrLinkRequired = errors.New("article link is required")

	// ErrTitleRequired is returned when storing an article without a title.
	ErrTitleRequired = errors.New("article title is required")

	// ErrStorageUnavailable is returned when no library storage is
	// configured. The HTTP layer treats it like any storage failure.
	ErrStorageUnavailable = errors.New("library storage is not configured")
)
