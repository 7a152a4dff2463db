package services

import (
	"context"
	"time"

	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

const weekDays = 7

// StatsService handles dashboard statistics
type StatsService interface {
	Get(ctx context.Context, userID string) (*models.Statistics, error)
}

type statsService struct {
	decks   repository.DeckRepository
	cards   repository.CardRepository
	reviews repository.ReviewRepository
	now     func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(decks repository.DeckRepository, cards repository.CardRepository, reviews repository.ReviewRepository) StatsService {
	return newStatsService(decks, cards, reviews, time.Now)
}

func newStatsService(decks repository.DeckRepository, cards repository.CardRepository, reviews repository.ReviewRepository, now func() time.Time) *statsService {
	return &statsService{decks: decks, cards: cards, reviews: reviews, now: now}
}

func (s *statsService) Get(ctx context.Context, userID string) (*models.Statistics, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting statistics: user_id=%s", userID)

	activity, err := s.reviews.ActivityByDay(ctx, userID)
	if err != nil {
		log.Error("failed to load activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	totalCards, err := s.cards.Count(ctx, userID)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	totalDecks, err := s.decks.Count(ctx, userID)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := s.now().UTC()
	stats := &models.Statistics{
		CardsStudiedToday: activity[today.Format(models.DayLayout)],
		CurrentStreak:     dayStreak(activity, today),
		TotalCards:        totalCards,
		TotalDecks:        totalDecks,
		WeeklyActivity:    make([]int, weekDays),
	}
	for i := 0; i < weekDays; i++ {
		day := today.AddDate(0, 0, i-(weekDays-1))
		stats.WeeklyActivity[i] = activity[day.Format(models.DayLayout)]
	}
	return stats, nil
}

// dayStreak counts consecutive days with reviews ending today, or ending
// yesterday when nothing has been studied yet today.
func dayStreak(activity map[string]int, today time.Time) int {
	day := today
	if activity[day.Format(models.DayLayout)] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for activity[day.Format(models.DayLayout)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
