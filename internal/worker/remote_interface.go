package worker

import (
	"context"

	"github.com/vytor/ladderflash/internal/models"
)

// RemoteInterface is the slice of the remote service the sync jobs call.
type RemoteInterface interface {
	SubmitReview(ctx context.Context, cardID string, rating models.Rating) error
	SetActiveLevel(ctx context.Context, cardID string, level int) error
}
