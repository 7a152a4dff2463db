package study

import (
	"context"

	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

// Rate records the learner's rating for the current card and advances the
// cursor by exactly one. The remote review is dispatched first but its
// outcome never gates the advance. It reports false when there was no
// current card or the rating is not one of the four known values.
func (s *Session) Rate(ctx context.Context, rating models.Rating) bool {
	if !rating.Valid() {
		s.log.Warn("ignoring invalid rating %d", int(rating))
		return false
	}
	if s.currentIndex >= len(s.cards) {
		return false
	}

	card := &s.cards[s.currentIndex]
	log := s.opLogger(ctx, card.ID).WithField("rating", rating)

	if err := s.syncer.SubmitReview(ctx, card.ID, rating); err != nil {
		log.Warn("review sync failed, continuing: %v", err)
	}

	if rating.IsCorrect() {
		card.Streak++
		s.correctCount++
	} else {
		card.Streak = 0
	}
	s.reviewed++
	s.currentIndex++

	log.Debug("card rated, cursor at %d/%d", s.currentIndex, len(s.cards))
	return true
}

// LevelUp moves the current card one level harder without advancing.
func (s *Session) LevelUp(ctx context.Context) bool {
	return s.shiftLevel(ctx, +1)
}

// LevelDown moves the current card one level easier without advancing.
func (s *Session) LevelDown(ctx context.Context) bool {
	return s.shiftLevel(ctx, -1)
}

func (s *Session) shiftLevel(ctx context.Context, delta int) bool {
	if s.currentIndex >= len(s.cards) {
		return false
	}

	current := s.cards[s.currentIndex]
	if delta > 0 && !current.CanLevelUp() {
		return false
	}
	if delta < 0 && !current.CanLevelDown() {
		return false
	}

	updated := current.Clone()
	updated.ActiveLevel += delta
	s.cards[s.currentIndex] = updated

	log := s.opLogger(ctx, updated.ID).WithField("level", updated.ActiveLevel)
	if err := s.syncer.SetActiveLevel(ctx, updated.ID, updated.ActiveLevel); err != nil {
		log.Warn("level sync failed, keeping local level: %v", err)
	}
	log.Debug("active level changed")
	return true
}

func (s *Session) opLogger(ctx context.Context, cardID string) *logger.Logger {
	log := s.log
	if ctxLog := logger.FromContext(ctx); ctxLog != logger.Default() {
		log = ctxLog.WithPrefix("study")
	}
	return log.WithField("card_id", cardID)
}
