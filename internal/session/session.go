// Package session manages the on-disk workspace of a screening run: one
// directory per session holding uploaded resumes, analysis reports and
// generated leaderboards.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status values recorded in session metadata.
const (
	StatusCreated    = "created"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusFailed     = "failed"
)

const (
	metadataFile    = "metadata.json"
	resumesDir      = "resumes"
	reportsDir      = "reports"
	maxIDSegment    = 50
	sessionPrefix   = "session_"
	timestampLayout = "20060102_150405"
)

// Metadata is the persisted state of one session.
type Metadata struct {
	SessionID               string    `json:"session_id"`
	CreatedAt               time.Time `json:"created_at"`
	CompanyID               string    `json:"company_id"`
	JobID                   string    `json:"job_id"`
	JobTitle                string    `json:"job_title"`
	Status                  string    `json:"status"`
	CandidatesProcessed     int       `json:"candidates_processed"`
	GitHubAnalysesCompleted int       `json:"github_analyses_completed"`
	LinkedInScoresGenerated int       `json:"linkedin_scores_generated"`
}

// Paths locates the well-known files and directories inside a session.
type Paths struct {
	Root        string
	Metadata    string
	Resumes     string
	Reports     string
	ResultsCSV  string
	Leaderboard string
}

// ErrSessionNotFound indicates an unknown session ID.
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// Manager creates and tracks session directories under a base directory.
type Manager struct {
	baseDir string
	log     *zap.Logger
	now     func() time.Time
}

// NewManager creates a manager rooted at baseDir, creating it if needed.
func NewManager(baseDir string, log *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session base dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{baseDir: baseDir, log: log, now: time.Now}, nil
}

// Create allocates a new session directory and writes its initial metadata.
// The ID embeds the sanitized company and job identifiers, a timestamp, and
// a random suffix so that sessions created in the same second never collide.
func (m *Manager) Create(companyID, jobID, jobTitle string) (*Metadata, error) {
	now := m.now().UTC()
	id := fmt.Sprintf("%s%s_%s_%s_%s",
		sessionPrefix,
		SanitizeID(companyID),
		SanitizeID(jobID),
		now.Format(timestampLayout),
		uuid.NewString()[:8])

	paths := m.Paths(id)
	for _, dir := range []string{paths.Root, paths.Resumes, paths.Reports} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create session dir: %w", err)
		}
	}

	meta := &Metadata{
		SessionID: id,
		CreatedAt: now,
		CompanyID: companyID,
		JobID:     jobID,
		JobTitle:  jobTitle,
		Status:    StatusCreated,
	}
	if err := m.writeMetadata(paths.Metadata, meta); err != nil {
		return nil, err
	}

	m.log.Info("session created",
		zap.String("session_id", id),
		zap.String("company_id", companyID),
		zap.String("job_id", jobID))
	return meta, nil
}

// Get loads a session's metadata.
func (m *Manager) Get(sessionID string) (*Metadata, error) {
	paths := m.Paths(sessionID)
	data, err := os.ReadFile(paths.Metadata)
	if os.IsNotExist(err) {
		return nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse session metadata: %w", err)
	}
	return &meta, nil
}

// Update applies fn to the session's metadata and persists the result.
func (m *Manager) Update(sessionID string, fn func(*Metadata)) (*Metadata, error) {
	meta, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}
	fn(meta)
	if err := m.writeMetadata(m.Paths(sessionID).Metadata, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Paths returns the filesystem layout for a session ID. The ID is reduced
// to its base name so a crafted ID cannot escape the base directory.
func (m *Manager) Paths(sessionID string) Paths {
	root := filepath.Join(m.baseDir, filepath.Base(sessionID))
	return Paths{
		Root:        root,
		Metadata:    filepath.Join(root, metadataFile),
		Resumes:     filepath.Join(root, resumesDir),
		Reports:     filepath.Join(root, reportsDir),
		ResultsCSV:  filepath.Join(root, "results.csv"),
		Leaderboard: filepath.Join(root, "leaderboard.json"),
	}
}

// List returns metadata for every session, newest first. Directories with
// unreadable metadata are skipped.
func (m *Manager) List() ([]*Metadata, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []*Metadata
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionPrefix) {
			continue
		}
		meta, err := m.Get(entry.Name())
		if err != nil {
			m.log.Warn("skipping unreadable session", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		sessions = append(sessions, meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Delete removes a session directory and everything in it.
func (m *Manager) Delete(sessionID string) error {
	paths := m.Paths(sessionID)
	if _, err := os.Stat(paths.Root); os.IsNotExist(err) {
		return &ErrSessionNotFound{SessionID: sessionID}
	}
	if err := os.RemoveAll(paths.Root); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.log.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// CleanupOlderThan deletes sessions created before the cutoff age and
// returns how many were removed.
func (m *Manager) CleanupOlderThan(age time.Duration) (int, error) {
	sessions, err := m.List()
	if err != nil {
		return 0, err
	}
	cutoff := m.now().Add(-age)
	removed := 0
	for _, meta := range sessions {
		if meta.CreatedAt.Before(cutoff) {
			if err := m.Delete(meta.SessionID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// Stats summarizes the sessions on disk by status.
func (m *Manager) Stats() (map[string]int, error) {
	sessions, err := m.List()
	if err != nil {
		return nil, err
	}
	stats := map[string]int{"total": len(sessions)}
	for _, meta := range sessions {
		stats[meta.Status]++
	}
	return stats, nil
}

// writeMetadata persists metadata atomically via a temp file rename, so a
// crashed write never leaves a truncated metadata.json behind.
func (m *Manager) writeMetadata(path string, meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session metadata: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create metadata temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close metadata temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace metadata: %w", err)
	}
	return nil
}

// SanitizeID reduces an identifier to a filesystem-safe slug: spaces and
// dots become underscores, anything outside [a-zA-Z0-9_-] is dropped, and
// the result is lowercased and capped in length.
func SanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r == ' ' || r == '.':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	if len(s) > maxIDSegment {
		s = s[:maxIDSegment]
	}
	if s == "" {
		s = "unknown"
	}
	return s
}
