package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/extract"
	"github.com/ibhanwork/hiresight/internal/types"
)

// handleInterviewGenerate produces tailored interview questions for a
// candidate. Requires the Gemini client to be configured.
func (s *Server) handleInterviewGenerate(w http.ResponseWriter, r *http.Request) {
	if s.interview == nil {
		s.errorResponse(w, &ErrServiceUnavailable{Service: "interview generation"})
		return
	}

	var req types.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if req.SessionID != "" {
		if _, err := s.sessions.Get(req.SessionID); err != nil {
			s.errorResponse(w, err)
			return
		}
	}

	// Session-only requests fan out over every stored resume.
	if req.CandidateText == "" {
		s.handleInterviewBatch(w, r, req.SessionID)
		return
	}

	result, err := s.interview.Generate(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, &ErrUpstream{Service: "gemini", Err: err})
		return
	}

	if req.SessionID != "" {
		dir := s.sessions.Paths(req.SessionID).Reports
		if err := s.interview.WriteToFile(dir, result); err != nil {
			s.log.Warn("failed to store interview questions",
				zap.String("session_id", req.SessionID), zap.Error(err))
		}
	}

	s.log.Info("interview questions generated",
		zap.String("candidate", req.CandidateName),
		zap.String("session_id", req.SessionID))
	s.jsonResponse(w, http.StatusOK, result)
}

// handleInterviewBatch generates a question set for every readable resume in
// the session. Unreadable files are skipped the same way /api/rank skips
// them.
func (s *Server) handleInterviewBatch(w http.ResponseWriter, r *http.Request, sessionID string) {
	paths := s.sessions.Paths(sessionID)
	entries, err := os.ReadDir(paths.Resumes)
	if err != nil {
		s.errorResponse(w, &ErrNotFound{Resource: "resumes", ID: sessionID})
		return
	}

	var reqs []*types.InterviewRequest
	for _, entry := range entries {
		if entry.IsDir() || !extract.SupportedResume(entry.Name()) {
			continue
		}
		path := filepath.Join(paths.Resumes, entry.Name())
		text, err := extract.File(path)
		if err != nil {
			s.log.Warn("skipping unreadable resume",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		reqs = append(reqs, &types.InterviewRequest{
			CandidateName: extract.CandidateName(text, entry.Name()),
			CandidateText: text,
			SessionID:     sessionID,
		})
	}
	if len(reqs) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "session_id", Message: "session has no readable resumes"})
		return
	}

	results, err := s.interview.GenerateBatch(r.Context(), reqs, paths.Reports)
	if err != nil {
		s.errorResponse(w, &ErrUpstream{Service: "gemini", Err: err})
		return
	}

	s.log.Info("interview question batch generated",
		zap.String("session_id", sessionID),
		zap.Int("count", len(results)))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"count":      len(results),
		"results":    results,
	})
}
