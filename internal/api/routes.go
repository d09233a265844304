package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/drills", s.handleListDrills)
		r.Get("/drills/{id}", s.handleGetDrill)
		r.Post("/drills", s.handleCreateDrill)

		r.Post("/attempts", s.handleSubmitAttempt)
		r.Get("/attempts", s.handleListAttempts)
		r.Get("/attempts/stats", s.handleUserStats)
		r.Get("/attempts/stats/summary", s.handleStatsSummary)
	})

	return r
}
