package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/drillforge/drillforge/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.AttemptWithDrill, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptWithDrill), args.Error(1)
}

func (m *MockAttemptRepository) HistoryByUser(ctx context.Context, userID string) ([]models.AttemptWithDrill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptWithDrill), args.Error(1)
}

func (m *MockAttemptRepository) GetSummary(ctx context.Context, userID string) (*models.StatsSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSummary), args.Error(1)
}

func (m *MockAttemptRepository) UpsertSummary(ctx context.Context, summary models.StatsSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
