package api

import (
	"net/http"
	"strconv"

	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
)

type submitAttemptRequest struct {
	DrillID string          `json:"drill_id"`
	Answers []models.Answer `json:"answers"`
}

func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	var req submitAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.DrillID == "" {
		handleError(w, r, errors.NewValidationError("drill_id", "cannot be empty"))
		return
	}

	attempt, err := s.AttemptService.SubmitAttempt(r.Context(), identity.UserID, req.DrillID, req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("attempt submitted: id=%s, score=%d", attempt.ID, attempt.Score)
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"attempt": map[string]any{
			"id":         attempt.ID,
			"score":      attempt.Score,
			"created_at": attempt.CreatedAt,
		},
	})
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
		limit = n
	}

	attempts, err := s.AttemptService.ListAttempts(r.Context(), identity.UserID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"attempts": attempts})
}
