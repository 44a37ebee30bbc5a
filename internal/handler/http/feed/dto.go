// Package feed provides HTTP handlers for fetching single feeds, merging
// multiple feeds, and listing the preset catalog.
package feed

import (
	"context"

	"rsstok/internal/domain/entity"
)

// Service is the feed use case surface the handlers depend on.
type Service interface {
	FetchFeed(ctx context.Context, url string) (*entity.FeedBatch, error)
	FetchMixed(ctx context.Context, urls []string) (*entity.MixedBatch, error)
}

// DTO is the JSON shape of a single-feed response.
type DTO struct {
	Title     string           `json:"title"`
	Articles  []entity.Article `json:"articles"`
	FetchedAt int64            `json:"fetchedAt"`
}

// MixedDTO is the JSON shape of a multi-feed response.
type MixedDTO struct {
	Articles    []entity.Article `json:"articles"`
	Title       string           `json:"title"`
	SourceCount int              `json:"sourceCount"`
	FetchedAt   int64            `json:"fetchedAt"`
}

func toDTO(batch *entity.FeedBatch) DTO {
	return DTO{
		Title:     batch.Title,
		Articles:  batch.Articles,
		FetchedAt: batch.FetchedAt.UnixMilli(),
	}
}

func toMixedDTO(batch *entity.MixedBatch) MixedDTO {
	return MixedDTO{
		Articles:    batch.Articles,
		Title:       batch.Title,
		SourceCount: batch.SourceCount,
		FetchedAt:   batch.FetchedAt.UnixMilli(),
	}
}
