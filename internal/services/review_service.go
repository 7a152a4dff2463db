package services

import (
	"context"
	"time"

	"github.com/vytor/ladderflash/internal/config"
	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/flashcard"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

// ReviewService handles the study queue and rating submissions
type ReviewService interface {
	Queue(ctx context.Context, filter models.QueueFilter) ([]models.Card, error)
	Submit(ctx context.Context, userID, cardID string, rating models.Rating) (*models.Review, error)
}

type reviewService struct {
	cards        repository.CardRepository
	reviews      repository.ReviewRepository
	defaultLimit int
	now          func() time.Time
}

// NewReviewService creates a new ReviewService. defaultLimit applies when a
// queue request does not name one.
func NewReviewService(cards repository.CardRepository, reviews repository.ReviewRepository, defaultLimit int) ReviewService {
	return &reviewService{cards: cards, reviews: reviews, defaultLimit: defaultLimit, now: time.Now}
}

func (s *reviewService) Queue(ctx context.Context, filter models.QueueFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if filter.Limit < 0 || filter.Limit > config.MaxQueueLimit {
		return nil, errors.NewValidationError("limit", "must be between 1 and 100")
	}
	if filter.Limit == 0 {
		filter.Limit = s.defaultLimit
	}

	cards, err := s.cards.ReviewQueue(ctx, filter)
	if err != nil {
		log.Error("failed to load review queue: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("review queue loaded: %d cards", len(cards))
	return cards, nil
}

func (s *reviewService) Submit(ctx context.Context, userID, cardID string, rating models.Rating) (*models.Review, error) {
	log := logger.FromContext(ctx)

	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be one of again, hard, good, easy")
	}

	card, err := s.cards.Get(ctx, userID, cardID)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := s.now().UTC()
	progress := flashcard.ApplyRating(flashcard.ProgressOf(*card), rating, now)
	review := models.Review{
		CardID:     cardID,
		Rating:     rating,
		Level:      card.ActiveLevel,
		ReviewedAt: now,
	}

	id, err := s.reviews.Record(ctx, review, progress)
	if err != nil {
		log.Error("failed to record review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	review.ID = id

	log.Debug("review recorded: card_id=%s, rating=%s, streak=%d", cardID, rating, progress.Streak)
	return &review, nil
}
