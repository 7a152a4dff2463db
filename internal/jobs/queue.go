package jobs

import (
	"context"

	"github.com/vytor/ladderflash/internal/models"
)

// SyncQueue accepts best-effort remote calls for later delivery. It
// satisfies study.Syncer.
type SyncQueue interface {
	SubmitReview(ctx context.Context, cardID string, rating models.Rating) error
	SetActiveLevel(ctx context.Context, cardID string, level int) error
}
