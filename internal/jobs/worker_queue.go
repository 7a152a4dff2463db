package jobs

import (
	"context"

	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/worker"
)

// WorkerQueue implements SyncQueue on top of a worker pool. Jobs run on
// the pool's context, not the caller's, so a finished UI event does not
// cancel its remote call.
type WorkerQueue struct {
	pool   *worker.Pool
	remote worker.RemoteInterface
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, remote worker.RemoteInterface) *WorkerQueue {
	return &WorkerQueue{pool: pool, remote: remote}
}

func (q *WorkerQueue) SubmitReview(_ context.Context, cardID string, rating models.Rating) error {
	return q.pool.Submit(&worker.SubmitReviewJob{
		Remote: q.remote,
		CardID: cardID,
		Rating: rating,
	})
}

func (q *WorkerQueue) SetActiveLevel(_ context.Context, cardID string, level int) error {
	return q.pool.Submit(&worker.SetActiveLevelJob{
		Remote: q.remote,
		CardID: cardID,
		Level:  level,
	})
}

var _ SyncQueue = (*WorkerQueue)(nil)
