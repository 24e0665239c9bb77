package database

import (
	"context"
	"fmt"
)

// Statements run in order; foreign keys cascade so removing a user or a
// movie also removes its watchlist entries and reviews at the store level.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'member',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id         UUID PRIMARY KEY,
		title      TEXT NOT NULL,
		synopsis   TEXT NOT NULL DEFAULT '',
		poster     TEXT NOT NULL DEFAULT '',
		year       INT NOT NULL,
		genre      TEXT NOT NULL DEFAULT '',
		duration   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS watchlist_entries (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id   UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          UUID PRIMARY KEY,
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id    UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		rating      INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		review_text TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token      UUID NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews (movie_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_entries_user_id ON watchlist_entries (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions (token)`,
}

// EnsureSchema creates the tables on startup if they do not exist yet
func EnsureSchema(ctx context.Context, db PgxIface) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
