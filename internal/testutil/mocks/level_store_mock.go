package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ladderflash/internal/models"
)

// MockLevelStore is a mock implementation of editor.LevelStore
type MockLevelStore struct {
	mock.Mock
}

func (m *MockLevelStore) DeleteLevel(ctx context.Context, cardID string, index int) error {
	args := m.Called(ctx, cardID, index)
	return args.Error(0)
}

func (m *MockLevelStore) UpsertLevel(ctx context.Context, cardID string, index int, content models.LevelContent) error {
	args := m.Called(ctx, cardID, index, content)
	return args.Error(0)
}

func (m *MockLevelStore) SetMaxLevel(ctx context.Context, cardID string, count int) error {
	args := m.Called(ctx, cardID, count)
	return args.Error(0)
}
