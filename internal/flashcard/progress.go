package flashcard

import (
	"time"

	"github.com/vytor/ladderflash/internal/models"
)

// ApplyRating updates a card's advisory counters for one rating.
// Anything but "again" extends the streak and counts as correct; "again"
// breaks the streak. Invalid ratings leave progress untouched.
func ApplyRating(progress models.ReviewProgress, rating models.Rating, now time.Time) models.ReviewProgress {
	if !rating.Valid() {
		return progress
	}

	progress.TimesReviewed++
	if rating.IsCorrect() {
		progress.Streak++
		progress.TimesCorrect++
	} else {
		progress.Streak = 0
	}
	reviewed := now.UTC()
	progress.LastReviewedAt = &reviewed
	return progress
}

// Accuracy returns the share of correct reviews as a whole percentage.
func Accuracy(progress models.ReviewProgress) int {
	if progress.TimesReviewed == 0 {
		return 0
	}
	return progress.TimesCorrect * 100 / progress.TimesReviewed
}

// ProgressOf extracts the counters from a card.
func ProgressOf(card models.Card) models.ReviewProgress {
	return models.ReviewProgress{
		Streak:         card.Streak,
		TimesReviewed:  card.TimesReviewed,
		TimesCorrect:   card.TimesCorrect,
		LastReviewedAt: card.LastReviewedAt,
	}
}
