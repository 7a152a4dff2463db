package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

const defaultDeckColor = "#4F46E5"

// DeckService handles deck-related business logic
type DeckService interface {
	List(ctx context.Context, userID string) ([]models.Deck, error)
	Create(ctx context.Context, userID string, deck models.Deck) (*models.Deck, error)
	GetWithCards(ctx context.Context, userID, deckID string) (*models.DeckWithCards, error)
}

type deckService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository, cards repository.CardRepository) DeckService {
	return &deckService{decks: decks, cards: cards}
}

func (s *deckService) List(ctx context.Context, userID string) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) Create(ctx context.Context, userID string, deck models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	deck.Title = strings.TrimSpace(deck.Title)
	if deck.Title == "" {
		return nil, errors.NewValidationError("title", "is required")
	}
	deck.Description = strings.TrimSpace(deck.Description)
	if deck.Color = strings.TrimSpace(deck.Color); deck.Color == "" {
		deck.Color = defaultDeckColor
	}
	deck.ID = uuid.NewString()
	deck.UserID = userID
	deck.CardCount = 0
	deck.CreatedAt = time.Now().UTC()

	if err := s.decks.Insert(ctx, deck); err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%s", deck.ID)
	return &deck, nil
}

func (s *deckService) GetWithCards(ctx context.Context, userID, deckID string) (*models.DeckWithCards, error) {
	log := logger.FromContext(ctx)

	deck, err := s.decks.Get(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &models.DeckWithCards{Deck: *deck, Cards: cards}, nil
}
