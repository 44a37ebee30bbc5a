// Package repository defines the persistence interfaces consumed by the
// usecase layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"
	"time"

	"rsstok/internal/domain/entity"
)

// LibraryRepository persists the user's article collections. Articles are
// keyed by link; adding an existing link refreshes its timestamp instead
// of creating a duplicate. Each collection is capped, and the oldest
// entries are evicted once the cap is exceeded.
type LibraryRepository interface {
	// AddSaved stores an article in the saved collection.
	AddSaved(ctx context.Context, article *entity.SavedArticle) error
	// ListSaved returns saved articles, newest first.
	ListSaved(ctx context.Context) ([]*entity.SavedArticle, error)
	// RemoveSaved deletes a saved article by link. Removing a link that
	// is not present is not an error.
	RemoveSaved(ctx context.Context, link string) error

	// AddLiked stores an article in the liked collection.
	AddLiked(ctx context.Context, article *entity.LikedArticle) error
	// ListLiked returns liked articles, newest first.
	ListLiked(ctx context.Context) ([]*entity.LikedArticle, error)
	// RemoveLiked deletes a liked article by link.
	RemoveLiked(ctx context.Context, link string) error

	// MarkRead records that the article at link was read.
	MarkRead(ctx context.Context, link string, readAt time.Time) error
	// CountRead returns the number of read marks currently retained.
	CountRead(ctx context.Context) (int64, error)
	// IsRead reports whether the article at link has a read mark.
	IsRead(ctx context.Context, link string) (bool, error)
	// ListReadLinks returns the links with read marks, newest first.
	ListReadLinks(ctx context.Context) ([]string, error)
	// ClearRead removes all read marks.
	ClearRead(ctx context.Context) error
}
