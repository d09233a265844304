package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: id=%s, drill_id=%s, score=%d", a.ID, a.DrillID, a.Score)

	answersJSON, err := marshalJSON(a.Answers)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO attempts (id, user_id, drill_id, answers, score, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, a.ID, a.UserID, a.DrillID, answersJSON, a.Score, a.CreatedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
	}
	return err
}

const attemptWithDrillQuery = `
SELECT a.id, a.user_id, a.drill_id, a.answers, a.score, a.created_at,
       d.title, d.difficulty
FROM attempts a
JOIN drills d ON d.id = a.drill_id
WHERE a.user_id = ?
ORDER BY a.created_at DESC
`

func (r *attemptRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.AttemptWithDrill, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%s, limit=%d", userID, limit)

	rows, err := r.db.QueryContext(ctx, attemptWithDrillQuery+" LIMIT ?", userID, limit)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows, log)
}

func (r *attemptRepository) HistoryByUser(ctx context.Context, userID string) ([]models.AttemptWithDrill, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("loading attempt history: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, attemptWithDrillQuery, userID)
	if err != nil {
		log.Error("failed to load attempt history: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows, log)
}

func scanAttempts(rows *sql.Rows, log *logger.Logger) ([]models.AttemptWithDrill, error) {
	var attempts []models.AttemptWithDrill
	for rows.Next() {
		var a models.AttemptWithDrill
		var answersJSON string
		if err := rows.Scan(&a.ID, &a.UserID, &a.DrillID, &answersJSON, &a.Score, &a.CreatedAt,
			&a.DrillTitle, &a.Difficulty); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if err := unmarshalJSON(answersJSON, &a.Answers); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) GetSummary(ctx context.Context, userID string) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var s models.StatsSummary
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, total_attempts, average_score, updated_at
FROM stats_cache
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.TotalAttempts, &s.AverageScore, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get stats summary: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *attemptRepository) UpsertSummary(ctx context.Context, s models.StatsSummary) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("upserting stats summary: user_id=%s, total=%d, avg=%d", s.UserID, s.TotalAttempts, s.AverageScore)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO stats_cache (user_id, total_attempts, average_score, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    total_attempts = excluded.total_attempts,
    average_score = excluded.average_score,
    updated_at = excluded.updated_at
`, s.UserID, s.TotalAttempts, s.AverageScore, s.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert stats summary: %v", err)
	}
	return err
}
