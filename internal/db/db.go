package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"weatherapp/server/internal/config"
)

// Connect opens the Postgres connection pool and verifies it is reachable.
// The pool is created once at startup and held for the process lifetime;
// the caller owns Close.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	pool, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// InitializeSchema creates the user and locations tables if they do not exist.
// The UNIQUE constraint on user.email is the duplicate-signup guard; the
// application relies on the resulting constraint violation instead of a
// pre-insert existence check.
func InitializeSchema(ctx context.Context, pool *sqlx.DB) error {
	userSchema := `
	CREATE TABLE IF NOT EXISTS "user" (
		id                  UUID PRIMARY KEY,
		username            TEXT NOT NULL,
		email               TEXT NOT NULL UNIQUE,
		password            TEXT NOT NULL,
		preferred_units     TEXT NOT NULL DEFAULT 'metric',
		save_search_history BOOLEAN NOT NULL DEFAULT TRUE
	);`

	if _, err := pool.ExecContext(ctx, userSchema); err != nil {
		return fmt.Errorf("failed to create user table: %w", err)
	}

	locationSchema := `
	CREATE TABLE IF NOT EXISTS locations (
		id          UUID PRIMARY KEY,
		latitude    DOUBLE PRECISION NOT NULL,
		longitude   DOUBLE PRECISION NOT NULL,
		name        TEXT NOT NULL,
		country     TEXT NOT NULL,
		timezone    TEXT NOT NULL,
		user_id     UUID NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
		type        TEXT NOT NULL,
		create_time TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err := pool.ExecContext(ctx, locationSchema); err != nil {
		return fmt.Errorf("failed to create locations table: %w", err)
	}

	locationIndex := `
	CREATE INDEX IF NOT EXISTS locations_user_type_idx
		ON locations (user_id, type, create_time DESC);`

	if _, err := pool.ExecContext(ctx, locationIndex); err != nil {
		return fmt.Errorf("failed to create locations index: %w", err)
	}

	slog.Info("DB connection initialized and schema verified")
	return nil
}
