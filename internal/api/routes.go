package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNoRoute)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed)
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/auth/me", s.handleMe)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleDeckDetail)
		r.Post("/decks/{id}/cards", s.handleCreateCard)

		r.Get("/review/cards", s.handleReviewQueue)

		r.Get("/cards/{id}", s.handleGetCard)
		r.Post("/cards/{id}/review", s.handleSubmitReview)
		r.Put("/cards/{id}/active-level", s.handleSetActiveLevel)
		r.Put("/cards/{id}/levels/{index}", s.handleUpsertLevel)
		r.Delete("/cards/{id}/levels/{index}", s.handleDeleteLevel)
		r.Put("/cards/{id}/max-level", s.handleSetMaxLevel)

		r.Get("/stats", s.handleStats)
	})
	return r
}
