package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/ladderflash/internal/editor"
	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

// CardService handles card and level ladder business logic
type CardService interface {
	Create(ctx context.Context, userID, deckID, title string, levels []models.LevelContent) (*models.Card, error)
	Get(ctx context.Context, userID, cardID string) (*models.Card, error)
	SetActiveLevel(ctx context.Context, userID, cardID string, level int) error
	UpsertLevel(ctx context.Context, userID, cardID string, index int, content models.LevelContent) error
	DeleteLevel(ctx context.Context, userID, cardID string, index int) error
	SetMaxLevel(ctx context.Context, userID, cardID string, count int) error
}

type cardService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(decks repository.DeckRepository, cards repository.CardRepository) CardService {
	return &cardService{decks: decks, cards: cards}
}

func (s *cardService) Create(ctx context.Context, userID, deckID, title string, levels []models.LevelContent) (*models.Card, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title", "is required")
	}
	cleaned := editor.Clean(levels)
	if len(cleaned) == 0 {
		return nil, errors.NewValidationError("levels", "at least one level needs both a question and an answer")
	}
	if len(cleaned) > models.MaxLevels {
		return nil, errors.NewValidationError("levels", fmt.Sprintf("at most %d levels allowed", models.MaxLevels))
	}

	deck, err := s.decks.Get(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	card := models.Card{
		ID:        uuid.NewString(),
		DeckID:    deckID,
		Title:     title,
		MaxLevel:  len(cleaned),
		Levels:    make([]models.Level, len(cleaned)),
		CreatedAt: time.Now().UTC(),
	}
	for i, content := range cleaned {
		card.Levels[i] = models.Level{Index: i, Content: content}
	}

	if err := s.cards.InsertWithLevels(ctx, card); err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("card created: id=%s, levels=%d", card.ID, len(card.Levels))
	return &card, nil
}

func (s *cardService) Get(ctx context.Context, userID, cardID string) (*models.Card, error) {
	card, err := s.cards.Get(ctx, userID, cardID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

func (s *cardService) SetActiveLevel(ctx context.Context, userID, cardID string, level int) error {
	card, err := s.Get(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if level < 0 || level >= len(card.Levels) {
		return errors.NewValidationError("level", fmt.Sprintf("must be between 0 and %d", len(card.Levels)-1))
	}
	if err := s.cards.SetActiveLevel(ctx, cardID, level); err != nil {
		logger.FromContext(ctx).Error("failed to set active level: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) UpsertLevel(ctx context.Context, userID, cardID string, index int, content models.LevelContent) error {
	if index < 0 || index >= models.MaxLevels {
		return errors.NewValidationError("level_index", fmt.Sprintf("must be between 0 and %d", models.MaxLevels-1))
	}
	cleaned := editor.Clean([]models.LevelContent{content})
	if len(cleaned) == 0 {
		return errors.NewValidationError("level", "question and answer are required")
	}
	if _, err := s.Get(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.cards.UpsertLevel(ctx, cardID, index, cleaned[0]); err != nil {
		logger.FromContext(ctx).Error("failed to upsert level: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) DeleteLevel(ctx context.Context, userID, cardID string, index int) error {
	if _, err := s.Get(ctx, userID, cardID); err != nil {
		return err
	}
	found, err := s.cards.DeleteLevel(ctx, cardID, index)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete level: %v", err)
		return errors.NewInternalError(err)
	}
	if !found {
		return errors.NewNotFoundError("level", index)
	}
	return nil
}

func (s *cardService) SetMaxLevel(ctx context.Context, userID, cardID string, count int) error {
	if count < 0 || count > models.MaxLevels {
		return errors.NewValidationError("max_level", fmt.Sprintf("must be between 0 and %d", models.MaxLevels))
	}
	if _, err := s.Get(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.cards.SetMaxLevel(ctx, cardID, count); err != nil {
		logger.FromContext(ctx).Error("failed to set max level: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
