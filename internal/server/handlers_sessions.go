package server

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/session"
)

// handleListSessions returns session metadata, newest first. Supports
// ?company=<id> to filter and ?limit=<n> to cap the result.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List()
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	company := strings.TrimSpace(r.URL.Query().Get("company"))
	if company != "" {
		want := session.SanitizeID(company)
		filtered := sessions[:0]
		for _, meta := range sessions {
			if session.SanitizeID(meta.CompanyID) == want {
				filtered = append(filtered, meta)
			}
		}
		sessions = filtered
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		if limit < len(sessions) {
			sessions = sessions[:limit]
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	meta, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, meta)
}

// handleGetSessionLeaderboard serves the stored leaderboard snapshot for
// a session, falling back to the database index when the file is gone.
func (s *Server) handleGetSessionLeaderboard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.sessions.Get(id); err != nil {
		s.errorResponse(w, err)
		return
	}

	data, err := os.ReadFile(s.sessions.Paths(id).Leaderboard)
	if os.IsNotExist(err) && s.store != nil {
		data, err = s.store.LatestSnapshot(r.Context(), id)
	}
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		s.errorResponse(w, &ErrNotFound{Resource: "leaderboard", ID: id})
		return
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.sessions.Delete(id); err != nil {
		s.errorResponse(w, err)
		return
	}
	if s.store != nil {
		if err := s.store.DeleteSession(r.Context(), id); err != nil {
			s.log.Warn("failed to remove session from index",
				zap.String("session_id", id), zap.Error(err))
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":     "deleted",
		"session_id": id,
	})
}

// indexSession mirrors session metadata into the database index when one
// is configured. Index failures are logged, not surfaced.
func (s *Server) indexSession(r *http.Request, meta *session.Metadata) {
	if s.store == nil || meta == nil {
		return
	}
	if err := s.store.UpsertSession(r.Context(), meta); err != nil {
		s.log.Warn("failed to index session",
			zap.String("session_id", meta.SessionID), zap.Error(err))
	}
}
