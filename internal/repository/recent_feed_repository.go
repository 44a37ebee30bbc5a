package repository

import (
	"context"
	"time"

	"rsstok/internal/domain/entity"
)

// RecentFeedRepository remembers the feed URLs the user loaded last.
// The list is capped; touching a URL already present moves it to the
// front instead of adding a duplicate.
type RecentFeedRepository interface {
	// Touch records that url was loaded at usedAt.
	Touch(ctx context.Context, url string, usedAt time.Time) error
	// List returns recent feeds, most recently used first.
	List(ctx context.Context) ([]*entity.RecentFeed, error)
}
