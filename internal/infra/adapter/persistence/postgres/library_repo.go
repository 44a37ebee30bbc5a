// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rsstok/internal/domain/entity"
	"rsstok/internal/repository"
)

// Collection caps. Adding beyond a cap evicts the oldest entries.
const (
	savedCap = 50
	likedCap = 100
	readCap  = 500
)

type LibraryRepo struct{ db *sql.DB }

func NewLibraryRepo(db *sql.DB) repository.LibraryRepository {
	return &LibraryRepo{db: db}
}

func (repo *LibraryRepo) AddSaved(ctx context.Context, article *entity.SavedArticle) error {
	const query = `
INSERT INTO saved_articles (article_id, link, title, description, full_content, has_full_content, pub_date, image, source, saved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (link) DO UPDATE SET saved_at = EXCLUDED.saved_at`
	_, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Link, article.Title, article.Description,
		article.FullContent, article.HasFullContent, article.PubDate,
		article.Image, article.Source, article.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("AddSaved: %w", err)
	}
	return repo.evict(ctx, "saved_articles", "saved_at", savedCap)
}

func (repo *LibraryRepo) ListSaved(ctx context.Context) ([]*entity.SavedArticle, error) {
	const query = `
SELECT article_id, link, title, description, full_content, has_full_content, pub_date, image, source, saved_at
FROM saved_articles
ORDER BY saved_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListSaved: %w", err)
	}
	defer func() { _ = rows.Close() }()

	saved := make([]*entity.SavedArticle, 0, savedCap)
	for rows.Next() {
		var a entity.SavedArticle
		if err := rows.Scan(
			&a.ID, &a.Link, &a.Title, &a.Description,
			&a.FullContent, &a.HasFullContent, &a.PubDate,
			&a.Image, &a.Source, &a.SavedAt,
		); err != nil {
			return nil, fmt.Errorf("ListSaved: %w", err)
		}
		saved = append(saved, &a)
	}
	return saved, rows.Err()
}

func (repo *LibraryRepo) RemoveSaved(ctx context.Context, link string) error {
	const query = `DELETE FROM saved_articles WHERE link = $1`
	if _, err := repo.db.ExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("RemoveSaved: %w", err)
	}
	return nil
}

func (repo *LibraryRepo) AddLiked(ctx context.Context, article *entity.LikedArticle) error {
	const query = `
INSERT INTO liked_articles (article_id, link, title, description, full_content, has_full_content, pub_date, image, source, liked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (link) DO UPDATE SET liked_at = EXCLUDED.liked_at`
	_, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Link, article.Title, article.Description,
		article.FullContent, article.HasFullContent, article.PubDate,
		article.Image, article.Source, article.LikedAt,
	)
	if err != nil {
		return fmt.Errorf("AddLiked: %w", err)
	}
	return repo.evict(ctx, "liked_articles", "liked_at", likedCap)
}

func (repo *LibraryRepo) ListLiked(ctx context.Context) ([]*entity.LikedArticle, error) {
	const query = `
SELECT article_id, link, title, description, full_content, has_full_content, pub_date, image, source, liked_at
FROM liked_articles
ORDER BY liked_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListLiked: %w", err)
	}
	defer func() { _ = rows.Close() }()

	liked := make([]*entity.LikedArticle, 0, likedCap)
	for rows.Next() {
		var a entity.LikedArticle
		if err := rows.Scan(
			&a.ID, &a.Link, &a.Title, &a.Description,
			&a.FullContent, &a.HasFullContent, &a.PubDate,
			&a.Image, &a.Source, &a.LikedAt,
		); err != nil {
			return nil, fmt.Errorf("ListLiked: %w", err)
		}
		liked = append(liked, &a)
	}
	return liked, rows.Err()
}

func (repo *LibraryRepo) RemoveLiked(ctx context.Context, link string) error {
	const query = `DELETE FROM liked_articles WHERE link = $1`
	if _, err := repo.db.ExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("RemoveLiked: %w", err)
	}
	return nil
}

func (repo *LibraryRepo) MarkRead(ctx context.Context, link string, readAt time.Time) error {
	const query = `
INSERT INTO read_articles (link, read_at)
VALUES ($1, $2)
ON CONFLICT (link) DO UPDATE SET read_at = EXCLUDED.read_at`
	if _, err := repo.db.ExecContext(ctx, query, link, readAt); err != nil {
		return fmt.Errorf("MarkRead: %w", err)
	}
	return repo.evict(ctx, "read_articles", "read_at", readCap)
}

func (repo *LibraryRepo) CountRead(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM read_articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountRead: %w", err)
	}
	return count, nil
}

func (repo *LibraryRepo) IsRead(ctx context.Context, link string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM read_articles WHERE link = $1)`
	var read bool
	if err := repo.db.QueryRowContext(ctx, query, link).Scan(&read); err != nil {
		return false, fmt.Errorf("IsRead: %w", err)
	}
	return read, nil
}

func (repo *LibraryRepo) ListReadLinks(ctx context.Context) ([]string, error) {
	const query = `SELECT link FROM read_articles ORDER BY read_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListReadLinks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := make([]string, 0, readCap)
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("ListReadLinks: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (repo *LibraryRepo) ClearRead(ctx context.Context) error {
	const query = `DELETE FROM read_articles`
	if _, err := repo.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ClearRead: %w", err)
	}
	return nil
}

// evict removes the oldest rows beyond cap, ordered by tsColumn.
// Table and column names come from package constants, never user input.
func (repo *LibraryRepo) evict(ctx context.Context, table, tsColumn string, cap int) error {
	query := fmt.Sprintf(`
DELETE FROM %[1]s
WHERE id NOT IN (
    SELECT id FROM %[1]s ORDER BY %[2]s DESC LIMIT $1
)`, table, tsColumn)
	if _, err := repo.db.ExecContext(ctx, query, cap); err != nil {
		return fmt.Errorf("evict %s: %w", table, err)
	}
	return nil
}
