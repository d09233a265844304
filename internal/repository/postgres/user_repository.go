package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a UserRepository backed by Postgres
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", u.Username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, password_hash, created_at)
VALUES ($1, $2, $3, $4)
`, u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		log.Error("failed to insert user: %v", err)
	}
	return err
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getWhere(ctx, "username = $1", username)
}

func (r *userRepository) getWhere(ctx context.Context, clause string, arg any) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE `+clause, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}
