package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long a fetched job posting stays fresh.
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// FetchedPage is a cached job-posting fetch.
type FetchedPage struct {
	URL        string
	Platform   string
	Text       string
	HTTPStatus int
	FetchedAt  time.Time
}

// SavePage upserts a fetched page into the cache.
func (db *DB) SavePage(ctx context.Context, page *FetchedPage) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO fetched_pages (url, platform, text_content, http_status, fetched_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (url) DO UPDATE SET
			platform = EXCLUDED.platform,
			text_content = EXCLUDED.text_content,
			http_status = EXCLUDED.http_status,
			fetched_at = NOW()`,
		page.URL, page.Platform, page.Text, page.HTTPStatus)
	if err != nil {
		return fmt.Errorf("failed to save fetched page: %w", err)
	}
	return nil
}

// GetFreshPage returns the cached page for url if it was fetched within ttl.
// Returns (nil, nil) when there is no fresh entry.
func (db *DB) GetFreshPage(ctx context.Context, url string, ttl time.Duration) (*FetchedPage, error) {
	var page FetchedPage
	err := db.pool.QueryRow(ctx, `
		SELECT url, platform, text_content, http_status, fetched_at
		FROM fetched_pages
		WHERE url = $1 AND fetched_at > NOW() - make_interval(secs => $2)`,
		url, ttl.Seconds()).
		Scan(&page.URL, &page.Platform, &page.Text, &page.HTTPStatus, &page.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fetched page: %w", err)
	}
	return &page, nil
}

// InvalidatePage drops a cached page so the next fetch goes to the network.
func (db *DB) InvalidatePage(ctx context.Context, url string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM fetched_pages WHERE url = $1`, url)
	if err != nil {
		return fmt.Errorf("failed to invalidate fetched page: %w", err)
	}
	return nil
}
