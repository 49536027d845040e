package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ibhanwork/hiresight/internal/types"
)

// handleToken exchanges the configured API key for a short-lived bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.jwt == nil {
		s.errorResponse(w, &ErrServiceUnavailable{Service: "authentication"})
		return
	}

	var req types.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.APIKey == "" {
		s.errorResponse(w, &ErrValidation{Field: "api_key", Message: "api_key is required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(s.cfg.APIKey)) != 1 {
		s.errorResponse(w, &ErrUnauthorized{Reason: "invalid API key"})
		return
	}

	token, expiresAt, err := s.jwt.GenerateToken()
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
