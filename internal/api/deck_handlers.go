package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

type createDeckRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type createCardRequest struct {
	Title  string                `json:"title"`
	Levels []models.LevelContent `json:"levels"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.List(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.Create(r.Context(), userFromContext(r.Context()), models.Deck{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleDeckDetail(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.GetWithCards(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deckID := chi.URLParam(r, "id")
	card, err := s.CardService.Create(r.Context(), userFromContext(r.Context()), deckID, req.Title, req.Levels)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("card %s created in deck %s", card.ID, deckID)
	writeJSON(w, http.StatusCreated, card)
}
