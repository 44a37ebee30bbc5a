package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rsstok/internal/domain/entity"
	"rsstok/internal/repository"
)

const recentCap = 5

type RecentFeedRepo struct{ db *sql.DB }

func NewRecentFeedRepo(db *sql.DB) repository.RecentFeedRepository {
	return &RecentFeedRepo{db: db}
}

func (repo *RecentFeedRepo) Touch(ctx context.Context, url string, usedAt time.Time) error {
	const query = `
INSERT INTO recent_feeds (url, used_at)
VALUES ($1, $2)
ON CONFLICT (url) DO UPDATE SET used_at = EXCLUDED.used_at`
	if _, err := repo.db.ExecContext(ctx, query, url, usedAt); err != nil {
		return fmt.Errorf("Touch: %w", err)
	}

	const evict = `
DELETE FROM recent_feeds
WHERE id NOT IN (
    SELECT id FROM recent_feeds ORDER BY used_at DESC LIMIT $1
)`
	if _, err := repo.db.ExecContext(ctx, evict, recentCap); err != nil {
		return fmt.Errorf("Touch: evict: %w", err)
	}
	return nil
}

func (repo *RecentFeedRepo) List(ctx context.Context) ([]*entity.RecentFeed, error) {
	const query = `
SELECT url, used_at
FROM recent_feeds
ORDER BY used_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recent := make([]*entity.RecentFeed, 0, recentCap)
	for rows.Next() {
		var rf entity.RecentFeed
		if err := rows.Scan(&rf.URL, &rf.UsedAt); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		recent = append(recent, &rf)
	}
	return recent, rows.Err()
}
