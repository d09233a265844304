package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/drillforge/drillforge/internal/logger"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/repository"
)

type drillRepository struct {
	db *sql.DB
}

// NewDrillRepository creates a new DrillRepository implementation
func NewDrillRepository(db *sql.DB) repository.DrillRepository {
	return &drillRepository{db: db}
}

func (r *drillRepository) Get(ctx context.Context, id string) (*models.Drill, error) {
	log := logger.FromContext(ctx).WithPrefix("drill_repo")
	log.Debug("getting drill: id=%s", id)

	var d models.Drill
	var tagsJSON, questionsJSON string
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, difficulty, tags, questions, created_at
FROM drills
WHERE id = ?
`, id).Scan(&d.ID, &d.Title, &d.Difficulty, &tagsJSON, &questionsJSON, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("drill not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get drill: %v", err)
		return nil, err
	}
	if err := unmarshalJSON(tagsJSON, &d.Tags); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(questionsJSON, &d.Questions); err != nil {
		return nil, err
	}
	log.Debug("drill found: title=%s, questions=%d", d.Title, len(d.Questions))
	return &d, nil
}

func (r *drillRepository) List(ctx context.Context, filter models.DrillFilter) ([]models.Drill, error) {
	log := logger.FromContext(ctx).WithPrefix("drill_repo")
	log.Debug("listing drills: difficulty=%s, tag=%s", filter.Difficulty, filter.Tag)

	query := sqlBuilder.Select("id", "title", "difficulty", "tags", "questions", "created_at").
		From("drills").
		OrderBy("created_at DESC")
	query = applyDrillFilter(query, filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list drills: %v", err)
		return nil, err
	}
	defer rows.Close()

	var drills []models.Drill
	for rows.Next() {
		var d models.Drill
		var tagsJSON, questionsJSON string
		if err := rows.Scan(&d.ID, &d.Title, &d.Difficulty, &tagsJSON, &questionsJSON, &d.CreatedAt); err != nil {
			log.Error("failed to scan drill row: %v", err)
			return nil, err
		}
		if err := unmarshalJSON(tagsJSON, &d.Tags); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(questionsJSON, &d.Questions); err != nil {
			return nil, err
		}
		drills = append(drills, d)
	}
	log.Debug("found %d drills", len(drills))
	return drills, rows.Err()
}

func (r *drillRepository) Count(ctx context.Context, filter models.DrillFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("drill_repo")

	query := applyDrillFilter(sqlBuilder.Select("COUNT(*)").From("drills"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count drills: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *drillRepository) Insert(ctx context.Context, d models.Drill) error {
	log := logger.FromContext(ctx).WithPrefix("drill_repo")
	log.Debug("inserting drill: id=%s, title=%s", d.ID, d.Title)

	tagsJSON, err := marshalJSON(d.Tags)
	if err != nil {
		return err
	}
	questionsJSON, err := marshalJSON(d.Questions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO drills (id, title, difficulty, tags, questions, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, d.ID, d.Title, d.Difficulty, tagsJSON, questionsJSON, d.CreatedAt)
	if err != nil {
		log.Error("failed to insert drill: %v", err)
	}
	return err
}

// applyDrillFilter adds the catalog filter clauses shared by List and Count.
func applyDrillFilter(query squirrel.SelectBuilder, filter models.DrillFilter) squirrel.SelectBuilder {
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Tag != "" {
		// Tags live in a JSON array column; match the quoted element.
		query = query.Where(squirrel.Like{"tags": `%"` + filter.Tag + `"%`})
	}
	return query
}
