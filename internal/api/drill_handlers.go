package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
)

func (s *Server) handleListDrills(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	filter := models.DrillFilter{
		Difficulty: r.URL.Query().Get("difficulty"),
		Tag:        r.URL.Query().Get("tag"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid offset"))
			return
		}
		filter.Offset = n
	}
	log.Debug("listing drills: difficulty=%s, tag=%s", filter.Difficulty, filter.Tag)

	drills, total, err := s.DrillService.ListDrills(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"drills": drills, "total": total})
}

func (s *Server) handleGetDrill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	drill, err := s.DrillService.GetDrill(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"drill": drill})
}

func (s *Server) handleCreateDrill(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		Title      string            `json:"title"`
		Difficulty string            `json:"difficulty"`
		Tags       []string          `json:"tags"`
		Questions  []models.Question `json:"questions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	drill, err := s.DrillService.CreateDrill(r.Context(), models.Drill{
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Tags:       req.Tags,
		Questions:  req.Questions,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("drill created: id=%s", drill.ID)
	respondJSON(w, r, http.StatusCreated, map[string]any{"drill": drill})
}
