package db

import "database/sql"

// MigrateUp creates the library schema. All statements are idempotent so
// the migration can run on every startup.
func MigrateUp(pool *sql.DB) error {
	tables := []string{
		`
CREATE TABLE IF NOT EXISTS saved_articles (
    id               SERIAL PRIMARY KEY,
    article_id       TEXT NOT NULL,
    link             TEXT NOT NULL UNIQUE,
    title            TEXT NOT NULL,
    description      TEXT,
    full_content     TEXT,
    has_full_content BOOLEAN NOT NULL DEFAULT FALSE,
    pub_date         TEXT,
    image            TEXT,
    source           TEXT,
    saved_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS liked_articles (
    id               SERIAL PRIMARY KEY,
    article_id       TEXT NOT NULL,
    link             TEXT NOT NULL UNIQUE,
    title            TEXT NOT NULL,
    description      TEXT,
    full_content     TEXT,
    has_full_content BOOLEAN NOT NULL DEFAULT FALSE,
    pub_date         TEXT,
    image            TEXT,
    source           TEXT,
    liked_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS read_articles (
    id      SERIAL PRIMARY KEY,
    link    TEXT NOT NULL UNIQUE,
    read_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS recent_feeds (
    id      SERIAL PRIMARY KEY,
    url     TEXT NOT NULL UNIQUE,
    used_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
	for _, stmt := range tables {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}

	// Eviction and listing both order by the timestamp columns.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_saved_articles_saved_at ON saved_articles(saved_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_liked_articles_liked_at ON liked_articles(liked_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_read_articles_read_at ON read_articles(read_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_recent_feeds_used_at ON recent_feeds(used_at DESC)`,
	}
	for _, stmt := range indexes {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the library schema. This deletes all stored
// collections; use with caution.
func MigrateDown(pool *sql.DB) error {
	drops := []string{
		`DROP TABLE IF EXISTS recent_feeds`,
		`DROP TABLE IF EXISTS read_articles`,
		`DROP TABLE IF EXISTS liked_articles`,
		`DROP TABLE IF EXISTS saved_articles`,
	}
	for _, stmt := range drops {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
