// Package library manages the user's article collections: saved,
// liked, read marks, and recently loaded feeds. Collections are keyed
// by article link and capped; the oldest entries are evicted first.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rsstok/internal/domain/entity"
	"rsstok/internal/repository"
)

type Service struct {
	repo   repository.LibraryRepository
	recent repository.RecentFeedRepository
	now    func() time.Time
}

// NewService creates a library Service. Both repositories may be nil when
// no database is configured; operations then return ErrStorageUnavailable,
// which the HTTP layer degrades to empty collections.
func NewService(repo repository.LibraryRepository, recent repository.RecentFeedRepository) *Service {
	return &Service{
		repo:   repo,
		recent: recent,
		now:    time.Now,
	}
}

// SaveArticle stores an article in the saved collection. Saving an
// already saved link refreshes its timestamp.
func (s *Service) SaveArticle(ctx context.Context, article entity.Article) error {
	if err := validateArticle(article); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	saved := &entity.SavedArticle{Article: article, SavedAt: s.now()}
	if err := s.repo.AddSaved(ctx, saved); err != nil {
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}

func (s *Service) ListSaved(ctx context.Context) ([]*entity.SavedArticle, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	return s.repo.ListSaved(ctx)
}

func (s *Service) UnsaveArticle(ctx context.Context, link string) error {
	if link == "" {
		return ErrLinkRequired
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	return s.repo.RemoveSaved(ctx, link)
}

// LikeArticle stores an article in the liked collection.
func (s *Service) LikeArticle(ctx context.Context, article entity.Article) error {
	if err := validateArticle(article); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	liked := &entity.LikedArticle{Article: article, LikedAt: s.now()}
	if err := s.repo.AddLiked(ctx, liked); err != nil {
		return fmt.Errorf("like article: %w", err)
	}
	return nil
}

func (s *Service) ListLiked(ctx context.Context) ([]*entity.LikedArticle, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	return s.repo.ListLiked(ctx)
}

func (s *Service) UnlikeArticle(ctx context.Context, link string) error {
	if link == "" {
		return ErrLinkRequired
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	return s.repo.RemoveLiked(ctx, link)
}

// MarkRead records that the article at link was read.
func (s *Service) MarkRead(ctx context.Context, link string) error {
	if link == "" {
		return ErrLinkRequired
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	return s.repo.MarkRead(ctx, link, s.now())
}

func (s *Service) IsRead(ctx context.Context, link string) (bool, error) {
	if link == "" {
		return false, ErrLinkRequired
	}
	if s.repo == nil {
		return false, ErrStorageUnavailable
	}
	return s.repo.IsRead(ctx, link)
}

func (s *Service) ReadLinks(ctx context.Context) ([]string, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	return s.repo.ListReadLinks(ctx)
}

func (s *Service) ReadCount(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, ErrStorageUnavailable
	}
	return s.repo.CountRead(ctx)
}

// ClearRead removes every read mark.
func (s *Service) ClearRead(ctx context.Context) error {
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	return s.repo.ClearRead(ctx)
}

// TouchRecentFeed records a feed URL as recently loaded. Failures are
// logged and swallowed; recent-feed tracking must never break a fetch.
func (s *Service) TouchRecentFeed(ctx context.Context, url string) {
	if s.recent == nil || url == "" {
		return
	}
	if err := s.recent.Touch(ctx, url, s.now()); err != nil {
		slog.Warn("failed to record recent feed",
			slog.String("url", url),
			slog.String("error", err.Error()))
	}
}

func (s *Service) RecentFeeds(ctx context.Context) ([]*entity.RecentFeed, error) {
	if s.recent == nil {
		return nil, nil
	}
	return s.recent.List(ctx)
}

func validateArticle(article entity.Article) error {
	if article.Link == "" {
		return ErrLinkRequired
	}
	if article.Title == "" {
		return ErrTitleRequired
	}
	return nil
}
