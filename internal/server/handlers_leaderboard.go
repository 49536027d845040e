package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/leaderboard"
	"github.com/ibhanwork/hiresight/internal/types"
)

// handleLeaderboard fuses a session's resume scores and GitHub reports
// into a ranked leaderboard, persists it in every export format, and
// returns the snapshot.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var req types.LeaderboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	meta, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	paths := s.sessions.Paths(req.SessionID)

	linkedin, err := loadOptionalCSV(paths.ResultsCSV)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	github, err := loadOptionalReports(paths.Reports)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	merged := leaderboard.MergeScores(linkedin, github)
	if len(merged) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "session_id", Message: "session has no candidate scores to rank"})
		return
	}

	gen := leaderboard.NewGenerator(s.cfg.Scoring)
	if req.LinkedInWeight > 0 || req.GitHubWeight > 0 {
		gen.LinkedInWeight = req.LinkedInWeight
		gen.GitHubWeight = req.GitHubWeight
	}
	if req.MinScore > 0 {
		gen.MinScore = req.MinScore
	}

	ranked, stats := gen.Generate(merged)
	snapshot := &leaderboard.Snapshot{
		SessionID:   req.SessionID,
		JobTitle:    meta.JobTitle,
		GeneratedAt: time.Now().UTC(),
		Candidates:  ranked,
		Stats:       stats,
	}

	if err := snapshot.WriteJSON(paths.Leaderboard); err != nil {
		s.errorResponse(w, err)
		return
	}
	base := strings.TrimSuffix(paths.Leaderboard, ".json")
	for ext, write := range map[string]func(string) error{
		".csv":  snapshot.WriteCSV,
		".md":   snapshot.WriteMarkdown,
		".xlsx": snapshot.WriteXLSX,
	} {
		if err := write(base + ext); err != nil {
			s.log.Warn("failed to export leaderboard",
				zap.String("format", ext), zap.Error(err))
		}
	}

	if s.store != nil {
		if err := s.store.SaveSnapshot(r.Context(), req.SessionID, snapshot); err != nil {
			s.log.Warn("failed to index leaderboard snapshot",
				zap.String("session_id", req.SessionID), zap.Error(err))
		}
	}

	s.log.Info("leaderboard generated",
		zap.String("session_id", req.SessionID),
		zap.Int("candidates", len(ranked)))
	s.jsonResponse(w, http.StatusOK, snapshot)
}

// loadOptionalCSV reads resume scores, treating an absent file as an
// empty score set.
func loadOptionalCSV(path string) ([]types.CandidateScore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return leaderboard.LoadLinkedInCSV(path)
}

// loadOptionalReports reads GitHub reports, treating an absent directory
// as an empty score set.
func loadOptionalReports(dir string) ([]types.CandidateScore, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return leaderboard.LoadGitHubReports(dir)
}
