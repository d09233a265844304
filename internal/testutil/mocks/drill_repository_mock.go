package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/drillforge/drillforge/internal/models"
)

// MockDrillRepository is a mock implementation of repository.DrillRepository
type MockDrillRepository struct {
	mock.Mock
}

func (m *MockDrillRepository) Get(ctx context.Context, id string) (*models.Drill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Drill), args.Error(1)
}

func (m *MockDrillRepository) List(ctx context.Context, filter models.DrillFilter) ([]models.Drill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Drill), args.Error(1)
}

func (m *MockDrillRepository) Count(ctx context.Context, filter models.DrillFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockDrillRepository) Insert(ctx context.Context, drill models.Drill) error {
	args := m.Called(ctx, drill)
	return args.Error(0)
}
