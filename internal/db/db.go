// Package db provides optional PostgreSQL persistence for session metadata
// and leaderboard snapshots. The filesystem session store remains the
// source of truth; the database is an index for querying across sessions.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id   TEXT PRIMARY KEY,
			company_id   TEXT NOT NULL,
			job_id       TEXT NOT NULL,
			job_title    TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'created',
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
			id           BIGSERIAL PRIMARY KEY,
			session_id   TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
			snapshot     JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS analysis_reports (
			session_id   TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
			username     TEXT NOT NULL,
			report       JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, username)
		);
		CREATE TABLE IF NOT EXISTS fetched_pages (
			url          TEXT PRIMARY KEY,
			platform     TEXT NOT NULL DEFAULT '',
			text_content TEXT NOT NULL DEFAULT '',
			http_status  INT NOT NULL DEFAULT 0,
			fetched_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
