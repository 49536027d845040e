package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ibhanwork/hiresight/internal/session"
)

// UpsertSession mirrors a session's metadata into the index.
func (db *DB) UpsertSession(ctx context.Context, meta *session.Metadata) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO sessions (session_id, company_id, job_id, job_title, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO UPDATE SET status = $5, updated_at = NOW()`,
		meta.SessionID, meta.CompanyID, meta.JobID, meta.JobTitle, meta.Status, meta.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// ListSessions returns the indexed sessions, newest first.
func (db *DB) ListSessions(ctx context.Context) ([]session.Metadata, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT session_id, company_id, job_id, job_title, status, created_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Metadata
	for rows.Next() {
		var meta session.Metadata
		if err := rows.Scan(&meta.SessionID, &meta.CompanyID, &meta.JobID,
			&meta.JobTitle, &meta.Status, &meta.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, meta)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its snapshots from the index.
func (db *DB) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SaveSnapshot stores a leaderboard snapshot for a session.
func (db *DB) SaveSnapshot(ctx context.Context, sessionID string, snapshot any) error {
	jsonBytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO leaderboard_snapshots (session_id, snapshot) VALUES ($1, $2)`,
		sessionID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent leaderboard snapshot for a
// session, or nil when none has been stored.
func (db *DB) LatestSnapshot(ctx context.Context, sessionID string) ([]byte, error) {
	var snapshot []byte
	err := db.pool.QueryRow(ctx,
		`SELECT snapshot FROM leaderboard_snapshots
		 WHERE session_id = $1 ORDER BY created_at DESC LIMIT 1`,
		sessionID,
	).Scan(&snapshot)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snapshot, nil
}

// SaveReport stores a candidate's analysis report for a session.
func (db *DB) SaveReport(ctx context.Context, sessionID, username string, report any) error {
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analysis_reports (session_id, username, report)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, username) DO UPDATE SET report = $3, created_at = NOW()`,
		sessionID, username, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save report for %s: %w", username, err)
	}
	return nil
}

// GetReport retrieves a candidate's analysis report, or nil when absent.
func (db *DB) GetReport(ctx context.Context, sessionID, username string) ([]byte, error) {
	var report []byte
	err := db.pool.QueryRow(ctx,
		`SELECT report FROM analysis_reports WHERE session_id = $1 AND username = $2`,
		sessionID, username,
	).Scan(&report)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report for %s: %w", username, err)
	}
	return report, nil
}
