package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/models"
)

type activeLevelRequest struct {
	Level *int `json:"level"`
}

type maxLevelRequest struct {
	MaxLevel *int `json:"max_level"`
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.CardService.Get(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleSetActiveLevel(w http.ResponseWriter, r *http.Request) {
	var req activeLevelRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Level == nil {
		handleError(w, r, errors.NewValidationError("level", "is required"))
		return
	}

	err := s.CardService.SetActiveLevel(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), *req.Level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpsertLevel(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var content models.LevelContent
	if err := decodeJSON(r, &content); err != nil {
		handleError(w, r, err)
		return
	}

	err = s.CardService.UpsertLevel(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), index, content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = s.CardService.DeleteLevel(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetMaxLevel(w http.ResponseWriter, r *http.Request) {
	var req maxLevelRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.MaxLevel == nil {
		handleError(w, r, errors.NewValidationError("max_level", "is required"))
		return
	}

	err := s.CardService.SetMaxLevel(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), *req.MaxLevel)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
