package repository

import (
	"context"

	"github.com/drillforge/drillforge/internal/models"
)

// DrillRepository handles drill catalog data access
type DrillRepository interface {
	Get(ctx context.Context, id string) (*models.Drill, error)
	List(ctx context.Context, filter models.DrillFilter) ([]models.Drill, error)
	Count(ctx context.Context, filter models.DrillFilter) (int, error)
	Insert(ctx context.Context, drill models.Drill) error
}

// AttemptRepository handles attempt data access. Listing methods return
// attempts joined with drill metadata, ordered newest-first.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.AttemptWithDrill, error)
	HistoryByUser(ctx context.Context, userID string) ([]models.AttemptWithDrill, error)
	GetSummary(ctx context.Context, userID string) (*models.StatsSummary, error)
	UpsertSummary(ctx context.Context, summary models.StatsSummary) error
}

// UserRepository handles user account data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
