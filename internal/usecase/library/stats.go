package library

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// Stats summarizes the user's reading activity.
type Stats struct {
	TotalRead     int64 `json:"totalRead"`
	TotalLiked    int   `json:"totalLiked"`
	TotalSaved    int   `json:"totalSaved"`
	TotalFeeds    int   `json:"totalFeeds"`
	UniqueSources int   `json:"uniqueSources"`

	SavedToday     int `json:"savedToday"`
	SavedThisWeek  int `json:"savedThisWeek"`
	SavedThisMonth int `json:"savedThisMonth"`
	LikedToday     int `json:"likedToday"`
	LikedThisWeek  int `json:"likedThisWeek"`
	LikedThisMonth int `json:"likedThisMonth"`

	TopSources []SourceCount `json:"topSources"`

	// EngagementRate is liked divided by read, as a rounded percentage.
	EngagementRate int `json:"engagementRate"`
	// SaveRate is saved divided by read, as a rounded percentage.
	SaveRate int `json:"saveRate"`
}

// SourceCount is one feed source with its interaction count across the
// saved and liked collections.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

const topSourceLimit = 5

// Stats computes activity statistics from the current collections.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	saved, err := s.repo.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	liked, err := s.repo.ListLiked(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	readCount, err := s.repo.CountRead(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	totalFeeds := 0
	if s.recent != nil {
		recent, err := s.recent.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		totalFeeds = len(recent)
	}

	now := s.now()
	day := 24 * time.Hour
	week := 7 * day
	month := 30 * day

	stats := &Stats{
		TotalRead:  readCount,
		TotalLiked: len(liked),
		TotalSaved: len(saved),
		TotalFeeds: totalFeeds,
	}

	sources := make(map[string]int)
	for _, a := range saved {
		age := now.Sub(a.SavedAt)
		if age < day {
			stats.SavedToday++
		}
		if age < week {
			stats.SavedThisWeek++
		}
		if age < month {
			stats.SavedThisMonth++
		}
		if a.Source != "" {
			sources[a.Source]++
		}
	}
	for _, a := range liked {
		age := now.Sub(a.LikedAt)
		if age < day {
			stats.LikedToday++
		}
		if age < week {
			stats.LikedThisWeek++
		}
		if age < month {
			stats.LikedThisMonth++
		}
		if a.Source != "" {
			sources[a.Source]++
		}
	}

	stats.UniqueSources = len(sources)
	stats.TopSources = topSources(sources, topSourceLimit)

	if readCount > 0 {
		stats.EngagementRate = roundedPercent(len(liked), readCount)
		stats.SaveRate = roundedPercent(len(saved), readCount)
	}

	return stats, nil
}

// topSources returns the limit most interacted-with sources, ties broken
// alphabetically for a stable order.
func topSources(counts map[string]int, limit int) []SourceCount {
	ranked := make([]SourceCount, 0, len(counts))
	for source, count := range counts {
		ranked = append(ranked, SourceCount{Source: source, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Source < ranked[j].Source
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func roundedPercent(part int, whole int64) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
