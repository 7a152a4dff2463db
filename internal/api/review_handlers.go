package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/models"
)

type reviewRequest struct {
	Rating *models.Rating `json:"rating"`
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	filter := models.QueueFilter{
		UserID: userFromContext(r.Context()),
		DeckID: r.URL.Query().Get("deck_id"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	cards, err := s.ReviewService.Queue(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Rating == nil {
		handleError(w, r, errors.NewValidationError("rating", "is required"))
		return
	}

	review, err := s.ReviewService.Submit(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), *req.Rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}
