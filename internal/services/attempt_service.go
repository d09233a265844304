package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
	"github.com/drillforge/drillforge/internal/scoring"
	"github.com/drillforge/drillforge/internal/worker"
)

const (
	maxAnswers       = 10
	maxAnswerLength  = 5000
	defaultListLimit = 10
	maxListLimit     = 50
)

// AttemptService handles attempt submission and history
type AttemptService interface {
	SubmitAttempt(ctx context.Context, userID, drillID string, answers []models.Answer) (*models.Attempt, error)
	ListAttempts(ctx context.Context, userID string, limit int) ([]models.AttemptWithDrill, error)
}

type attemptService struct {
	drillRepo   repository.DrillRepository
	attemptRepo repository.AttemptRepository
	stats       StatsService
	pool        *worker.Pool
}

// NewAttemptService creates a new AttemptService. The pool is optional;
// when present, each submission queues a background stats-cache refresh.
func NewAttemptService(drillRepo repository.DrillRepository, attemptRepo repository.AttemptRepository, stats StatsService, pool *worker.Pool) AttemptService {
	return &attemptService{
		drillRepo:   drillRepo,
		attemptRepo: attemptRepo,
		stats:       stats,
		pool:        pool,
	}
}

func (s *attemptService) SubmitAttempt(ctx context.Context, userID, drillID string, answers []models.Answer) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting attempt: drill_id=%s, answers=%d", drillID, len(answers))

	if details := validateAnswers(answers); len(details) > 0 {
		return nil, errors.NewValidationErrors(details)
	}

	drill, err := s.drillRepo.Get(ctx, drillID)
	if err != nil {
		log.Error("failed to load drill: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if drill == nil {
		return nil, errors.NewNotFoundError("drill", drillID)
	}

	if len(answers) != len(drill.Questions) {
		return nil, errors.NewValidationError("answers",
			fmt.Sprintf("all questions must be answered: got %d answers for %d questions", len(answers), len(drill.Questions)))
	}
	known := make(map[int]bool, len(drill.Questions))
	for _, q := range drill.Questions {
		known[q.ID] = true
	}
	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		if !known[a.QuestionID] {
			return nil, errors.NewValidationError("answers",
				fmt.Sprintf("question %d does not belong to this drill", a.QuestionID))
		}
		if answered[a.QuestionID] {
			return nil, errors.NewValidationError("answers",
				fmt.Sprintf("duplicate answer for question %d", a.QuestionID))
		}
		answered[a.QuestionID] = true
	}

	attempt := models.Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		DrillID:   drillID,
		Answers:   answers,
		Score:     scoring.Score(answers, drill.Questions),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.attemptRepo.Insert(ctx, attempt); err != nil {
		log.Error("failed to insert attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("attempt submitted: id=%s, score=%d", attempt.ID, attempt.Score)

	if s.pool != nil && s.stats != nil {
		s.pool.Submit(worker.JobFunc{
			JobName: "stats-refresh",
			Fn: func(jobCtx context.Context) error {
				return s.stats.RefreshSummary(jobCtx, userID)
			},
		})
	}

	return &attempt, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, userID string, limit int) ([]models.AttemptWithDrill, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	log.Debug("listing attempts: limit=%d", limit)

	attempts, err := s.attemptRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempts == nil {
		attempts = []models.AttemptWithDrill{}
	}
	return attempts, nil
}

func validateAnswers(answers []models.Answer) []errors.FieldError {
	var details []errors.FieldError
	if len(answers) == 0 {
		return append(details, errors.FieldError{Field: "answers", Message: "at least one answer is required"})
	}
	if len(answers) > maxAnswers {
		return append(details, errors.FieldError{Field: "answers", Message: fmt.Sprintf("too many answers (max %d)", maxAnswers)})
	}
	for i, a := range answers {
		if a.QuestionID <= 0 {
			details = append(details, errors.FieldError{
				Field:   fmt.Sprintf("answers.%d.questionId", i),
				Message: "question ID must be a positive integer",
			})
		}
		if a.Answer == "" {
			details = append(details, errors.FieldError{
				Field:   fmt.Sprintf("answers.%d.answer", i),
				Message: "answer cannot be empty",
			})
		} else if len(a.Answer) > maxAnswerLength {
			details = append(details, errors.FieldError{
				Field:   fmt.Sprintf("answers.%d.answer", i),
				Message: fmt.Sprintf("answer too long (max %d characters)", maxAnswerLength),
			})
		}
	}
	return details
}
