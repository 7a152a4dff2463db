package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ladderflash/internal/models"
)

// MockSyncer is a mock implementation of study.Syncer
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) SubmitReview(ctx context.Context, cardID string, rating models.Rating) error {
	args := m.Called(ctx, cardID, rating)
	return args.Error(0)
}

func (m *MockSyncer) SetActiveLevel(ctx context.Context, cardID string, level int) error {
	args := m.Called(ctx, cardID, level)
	return args.Error(0)
}

// MockQueueLoader is a mock implementation of study.QueueLoader
type MockQueueLoader struct {
	mock.Mock
}

func (m *MockQueueLoader) ReviewQueue(ctx context.Context, deckID string, limit int) ([]models.Card, error) {
	args := m.Called(ctx, deckID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}
