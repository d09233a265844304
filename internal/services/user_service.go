package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
)

// UserService handles registration and login
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	log.Debug("registering user: username=%s", username)

	var details []errors.FieldError
	if len(username) < 3 {
		details = append(details, errors.FieldError{Field: "username", Message: "must be at least 3 characters"})
	}
	if len(password) < 8 {
		details = append(details, errors.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(details) > 0 {
		return nil, errors.NewValidationErrors(details)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to check username: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("username already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user registered: id=%s", user.ID)
	return &user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	log.Debug("login: username=%s", username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		// Same failure for unknown user and wrong password.
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	return user, nil
}
