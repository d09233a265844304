package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
)

// DrillService handles drill catalog business logic
type DrillService interface {
	ListDrills(ctx context.Context, filter models.DrillFilter) ([]models.Drill, int, error)
	GetDrill(ctx context.Context, id string) (*models.Drill, error)
	CreateDrill(ctx context.Context, drill models.Drill) (*models.Drill, error)
}

type drillService struct {
	drillRepo repository.DrillRepository
}

// NewDrillService creates a new DrillService
func NewDrillService(drillRepo repository.DrillRepository) DrillService {
	return &drillService{drillRepo: drillRepo}
}

func (s *drillService) ListDrills(ctx context.Context, filter models.DrillFilter) ([]models.Drill, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing drills: difficulty=%s", filter.Difficulty)

	// Unknown difficulty values fall through to an unfiltered listing,
	// mirroring how the catalog endpoint has always behaved.
	if filter.Difficulty != "" && !models.ValidDifficulty(filter.Difficulty) {
		filter.Difficulty = ""
	}

	drills, err := s.drillRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list drills: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	if drills == nil {
		drills = []models.Drill{}
	}

	total, err := s.drillRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count drills: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return drills, total, nil
}

func (s *drillService) GetDrill(ctx context.Context, id string) (*models.Drill, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting drill: id=%s", id)

	if id == "" {
		return nil, errors.NewBadRequestError("drill ID is required")
	}

	drill, err := s.drillRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get drill: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if drill == nil {
		return nil, errors.NewNotFoundError("drill", id)
	}
	return drill, nil
}

func (s *drillService) CreateDrill(ctx context.Context, drill models.Drill) (*models.Drill, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating drill: title=%s", drill.Title)

	var details []errors.FieldError
	if drill.Title == "" {
		details = append(details, errors.FieldError{Field: "title", Message: "cannot be empty"})
	}
	if !models.ValidDifficulty(drill.Difficulty) {
		details = append(details, errors.FieldError{Field: "difficulty", Message: "must be easy, medium or hard"})
	}
	if len(drill.Questions) == 0 {
		details = append(details, errors.FieldError{Field: "questions", Message: "at least one question is required"})
	}
	seen := map[int]bool{}
	for _, q := range drill.Questions {
		if q.ID <= 0 {
			details = append(details, errors.FieldError{Field: "questions", Message: "question ids must be positive"})
			break
		}
		if seen[q.ID] {
			details = append(details, errors.FieldError{Field: "questions", Message: "question ids must be unique"})
			break
		}
		seen[q.ID] = true
		if q.Prompt == "" {
			details = append(details, errors.FieldError{Field: "questions", Message: "question prompts cannot be empty"})
			break
		}
	}
	if len(details) > 0 {
		return nil, errors.NewValidationErrors(details)
	}

	drill.ID = uuid.NewString()
	drill.CreatedAt = time.Now().UTC()
	if drill.Tags == nil {
		drill.Tags = []string{}
	}

	if err := s.drillRepo.Insert(ctx, drill); err != nil {
		log.Error("failed to insert drill: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("drill created: id=%s, title=%s", drill.ID, drill.Title)
	return &drill, nil
}
