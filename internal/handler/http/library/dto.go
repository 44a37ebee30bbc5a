// Package library provides HTTP handlers for the user's article library:
// saved and liked articles, read tracking, recent feeds, and reading stats.
package library

import (
	"context"
	"time"

	"rsstok/internal/domain/entity"
	libUC "rsstok/internal/usecase/library"
)

// Service is the library use case surface the handlers depend on.
type Service interface {
	SaveArticle(ctx context.Context, article entity.Article) error
	ListSaved(ctx context.Context) ([]*entity.SavedArticle, error)
	UnsaveArticle(ctx context.Context, link string) error

	LikeArticle(ctx context.Context, article entity.Article) error
	ListLiked(ctx context.Context) ([]*entity.LikedArticle, error)
	UnlikeArticle(ctx context.Context, link string) error

	MarkRead(ctx context.Context, link string) error
	ReadLinks(ctx context.Context) ([]string, error)
	ClearRead(ctx context.Context) error

	TouchRecentFeed(ctx context.Context, url string)
	RecentFeeds(ctx context.Context) ([]*entity.RecentFeed, error)

	Stats(ctx context.Context) (*libUC.Stats, error)
}

// SavedDTO is the JSON shape of a stored article.
type SavedDTO struct {
	entity.Article
	SavedAt string `json:"savedAt"`
}

// LikedDTO is the JSON shape of a liked article.
type LikedDTO struct {
	entity.Article
	LikedAt string `json:"likedAt"`
}

// RecentFeedDTO is the JSON shape of a recently used feed.
type RecentFeedDTO struct {
	URL    string `json:"url"`
	UsedAt string `json:"usedAt"`
}

func toSavedDTOs(articles []*entity.SavedArticle) []SavedDTO {
	out := make([]SavedDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, SavedDTO{Article: a.Article, SavedAt: a.SavedAt.UTC().Format(time.RFC3339)})
	}
	return out
}

func toLikedDTOs(articles []*entity.LikedArticle) []LikedDTO {
	out := make([]LikedDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, LikedDTO{Article: a.Article, LikedAt: a.LikedAt.UTC().Format(time.RFC3339)})
	}
	return out
}

func toRecentFeedDTOs(feeds []*entity.RecentFeed) []RecentFeedDTO {
	out := make([]RecentFeedDTO, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, RecentFeedDTO{URL: f.URL, UsedAt: f.UsedAt.UTC().Format(time.RFC3339)})
	}
	return out
}
