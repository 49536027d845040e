package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ibhanwork/hiresight/internal/types"
)

// handleInvite emails interview invitations to a batch of candidates.
// Requires SMTP to be configured.
func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	if s.mail == nil {
		s.errorResponse(w, &ErrServiceUnavailable{Service: "email invitations"})
		return
	}

	var req types.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	result := s.mail.SendInvites(&req)
	s.log.Info("invitations processed",
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)))
	s.jsonResponse(w, http.StatusOK, result)
}
