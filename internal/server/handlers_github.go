package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/session"
	"github.com/ibhanwork/hiresight/internal/types"
)

// handleGitHubAnalyze fetches a candidate's GitHub profile, runs the full
// analysis, and optionally matches it against job requirements. When a
// session ID is given the report is stored in that session.
func (s *Server) handleGitHubAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.GitHubAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "username", Message: err.Error()})
		return
	}
	if req.Requirements != nil {
		if err := req.Requirements.Validate(); err != nil {
			s.errorResponse(w, &ErrValidation{Field: "job_requirements", Message: err.Error()})
			return
		}
	}
	if req.SessionID != "" {
		if _, err := s.sessions.Get(req.SessionID); err != nil {
			s.errorResponse(w, err)
			return
		}
	}

	bundle, err := s.gh.FetchProfile(r.Context(), req.Username)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	analysis := s.analyzer.Analyze(bundle)
	report := &types.GitHubReport{Analysis: *analysis}
	if req.Requirements != nil {
		report.MatchResults = s.matcher.Match(analysis, req.Requirements)
		report.Bias = s.matcher.DetectBias(req.Requirements)
	}

	if req.SessionID != "" {
		if err := s.storeReport(r, req.SessionID, report); err != nil {
			s.errorResponse(w, err)
			return
		}
	}

	s.log.Info("github analysis complete",
		zap.String("username", report.Analysis.Profile.Username),
		zap.String("session_id", req.SessionID))
	s.jsonResponse(w, http.StatusOK, report)
}

// storeReport writes an analysis report into the session's reports
// directory and mirrors it into the database index.
func (s *Server) storeReport(r *http.Request, sessionID string, report *types.GitHubReport) error {
	username := report.Analysis.Profile.Username
	paths := s.sessions.Paths(sessionID)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis report: %w", err)
	}
	dest := filepath.Join(paths.Reports, fmt.Sprintf("analysis_%s.json", session.SanitizeID(username)))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis report: %w", err)
	}

	meta, err := s.sessions.Update(sessionID, func(m *session.Metadata) {
		m.GitHubAnalysesCompleted++
	})
	if err != nil {
		return err
	}
	s.indexSession(r, meta)

	if s.store != nil {
		if err := s.store.SaveReport(r.Context(), sessionID, username, report); err != nil {
			s.log.Warn("failed to index analysis report",
				zap.String("session_id", sessionID),
				zap.String("username", username), zap.Error(err))
		}
	}
	return nil
}
