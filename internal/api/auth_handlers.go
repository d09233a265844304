package api

import (
	"net/http"

	"github.com/drillforge/drillforge/internal/logger"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	token, err := s.Auth.IssueToken(user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		handleError(w, r, err)
		return
	}

	log.Info("user registered: username=%s", user.Username)
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	token, err := s.Auth.IssueToken(user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
