package services

import (
	"context"
	"time"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/progress"
	"github.com/drillforge/drillforge/internal/repository"
)

// StatsService handles attempt statistics
type StatsService interface {
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
	GetSummary(ctx context.Context, userID string) (*models.StatsSummary, error)
	RefreshSummary(ctx context.Context, userID string) error
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	now         func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(attemptRepo repository.AttemptRepository) StatsService {
	return &statsService{attemptRepo: attemptRepo, now: time.Now}
}

func (s *statsService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing user stats")

	attempts, err := s.attemptRepo.HistoryByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load attempt history: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := progress.Summarize(attempts, s.now())
	return &stats, nil
}

func (s *statsService) GetSummary(ctx context.Context, userID string) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx)

	summary, err := s.attemptRepo.GetSummary(ctx, userID)
	if err != nil {
		log.Error("failed to load stats summary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if summary != nil {
		return summary, nil
	}

	// No cached row yet; compute one on demand.
	log.Debug("no cached summary, computing")
	if err := s.RefreshSummary(ctx, userID); err != nil {
		return nil, err
	}
	summary, err = s.attemptRepo.GetSummary(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if summary == nil {
		// User exists but refresh raced with nothing to cache; return zeros.
		return &models.StatsSummary{UserID: userID, UpdatedAt: s.now().UTC()}, nil
	}
	return summary, nil
}

func (s *statsService) RefreshSummary(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	log.Debug("refreshing stats summary")

	attempts, err := s.attemptRepo.HistoryByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load attempt history: %v", err)
		return errors.NewInternalError(err)
	}

	stats := progress.Summarize(attempts, s.now())
	summary := models.StatsSummary{
		UserID:        userID,
		TotalAttempts: stats.TotalAttempts,
		AverageScore:  stats.AverageScore,
		UpdatedAt:     s.now().UTC(),
	}

	if err := s.attemptRepo.UpsertSummary(ctx, summary); err != nil {
		log.Error("failed to upsert stats summary: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
