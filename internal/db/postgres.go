package db

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx

	"github.com/drillforge/drillforge/internal/logger"
)

// OpenPostgres connects to Postgres through the pgx stdlib driver and
// ensures the schema exists. Used when DB_DRIVER=postgres; the sqlite and
// postgres stores implement the same repository interfaces.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	log := logger.Default().WithPrefix("db")
	log.Info("connecting to postgres")

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Error("failed to open postgres connection: %v", err)
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Error("failed to ping postgres: %v", err)
		return nil, err
	}

	log.Debug("ensuring postgres schema")
	if _, err := sqlDB.ExecContext(ctx, schemaPostgres); err != nil {
		log.Error("failed to ensure postgres schema: %v", err)
		return nil, err
	}

	log.Info("postgres ready")
	return sqlDB, nil
}

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS drills (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    difficulty TEXT NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard')),
    tags       JSONB NOT NULL DEFAULT '[]',
    questions  JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS attempts (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    drill_id   TEXT NOT NULL REFERENCES drills(id),
    answers    JSONB NOT NULL,
    score      INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stats_cache (
    user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    total_attempts INTEGER NOT NULL DEFAULT 0,
    average_score  INTEGER NOT NULL DEFAULT 0,
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_attempts_user_created ON attempts(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_drills_difficulty ON drills(difficulty);
`
