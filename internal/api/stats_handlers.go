package api

import (
	"net/http"

	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/errors"
)

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	stats, err := s.StatsService.GetUserStats(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"stats": stats})
}

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	summary, err := s.StatsService.GetSummary(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"summary": summary})
}
