package worker

import (
	"context"
	"fmt"

	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

// SubmitReviewJob sends one rating to the remote service.
type SubmitReviewJob struct {
	Remote RemoteInterface
	CardID string
	Rating models.Rating
}

func (j *SubmitReviewJob) Name() string {
	return fmt.Sprintf("submit_review:%s:%s", j.CardID, j.Rating)
}

// Key orders a card's review behind its earlier level changes.
func (j *SubmitReviewJob) Key() string { return j.CardID }

func (j *SubmitReviewJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := j.Remote.SubmitReview(ctx, j.CardID, j.Rating); err != nil {
		return fmt.Errorf("submit review for card %s: %w", j.CardID, err)
	}
	log.Debug("review synced")
	return nil
}

// SetActiveLevelJob records a level change on the remote service.
type SetActiveLevelJob struct {
	Remote RemoteInterface
	CardID string
	Level  int
}

func (j *SetActiveLevelJob) Name() string {
	return fmt.Sprintf("set_active_level:%s:%d", j.CardID, j.Level)
}

func (j *SetActiveLevelJob) Key() string { return j.CardID }

func (j *SetActiveLevelJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := j.Remote.SetActiveLevel(ctx, j.CardID, j.Level); err != nil {
		return fmt.Errorf("set active level for card %s: %w", j.CardID, err)
	}
	log.Debug("active level synced")
	return nil
}

var (
	_ Keyed = (*SubmitReviewJob)(nil)
	_ Keyed = (*SetActiveLevelJob)(nil)
)
