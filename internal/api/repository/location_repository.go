package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"weatherapp/server/internal/api/models"
)

// LocationRepository defines the interface for location data operations.
// Saved locations and search history share one table; every query is scoped
// by owning user and by the type discriminator.
type LocationRepository interface {
	Create(ctx context.Context, loc *models.Location) error
	ListByKind(ctx context.Context, userID, kind string) ([]models.Location, error)
	DeleteSaved(ctx context.Context, userID string, q models.LocationQuery) (bool, error)
	FindSaved(ctx context.Context, userID string, q models.LocationQuery) (*models.Location, error)
}

type postgresLocationRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewLocationRepository creates a new Postgres-based LocationRepository.
func NewLocationRepository(db *sqlx.DB, timeout time.Duration) LocationRepository {
	return &postgresLocationRepository{db: db, timeout: timeout}
}

// Create inserts a location row. create_time is assigned by the database and
// read back so the returned record is complete.
func (r *postgresLocationRepository) Create(ctx context.Context, loc *models.Location) error {
	ctx, span := tracer.Start(ctx, "LocationRepository.Create")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO locations (id, latitude, longitude, name, country, timezone, user_id, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING create_time`
	err := r.db.QueryRowxContext(ctx, query,
		loc.ID, loc.Latitude, loc.Longitude, loc.Name, loc.Country, loc.Timezone, loc.UserID, loc.Type,
	).Scan(&loc.CreateTime)
	if err != nil {
		return storeErr("failed to create location", err)
	}
	return nil
}

// ListByKind returns all rows of one kind for one user. Search history is
// ordered newest first; saved locations keep insertion order.
func (r *postgresLocationRepository) ListByKind(ctx context.Context, userID, kind string) ([]models.Location, error) {
	ctx, span := tracer.Start(ctx, "LocationRepository.ListByKind")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT id, latitude, longitude, name, country, timezone, user_id, type, create_time
		FROM locations WHERE user_id = $1 AND type = $2`
	if kind == models.KindSearchHistory {
		query += ` ORDER BY create_time DESC`
	}

	locations := []models.Location{}
	if err := r.db.SelectContext(ctx, &locations, query, userID, kind); err != nil {
		return nil, storeErr("failed to list locations", err)
	}
	return locations, nil
}

// DeleteSaved removes saved locations matching the full field tuple exactly,
// coordinates included. Reports whether any row was deleted.
func (r *postgresLocationRepository) DeleteSaved(ctx context.Context, userID string, q models.LocationQuery) (bool, error) {
	ctx, span := tracer.Start(ctx, "LocationRepository.DeleteSaved")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `DELETE FROM locations
		WHERE user_id = $1 AND type = $2
			AND latitude = $3 AND longitude = $4
			AND name = $5 AND country = $6 AND timezone = $7`
	result, err := r.db.ExecContext(ctx, query,
		userID, models.KindSavedLocation, q.Latitude, q.Longitude, q.Name, q.Country, q.Timezone)
	if err != nil {
		return false, storeErr("failed to delete location", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, storeErr("failed to read delete result", err)
	}
	return rows > 0, nil
}

// FindSaved returns the first saved location matching the full field tuple,
// or nil when none does.
func (r *postgresLocationRepository) FindSaved(ctx context.Context, userID string, q models.LocationQuery) (*models.Location, error) {
	ctx, span := tracer.Start(ctx, "LocationRepository.FindSaved")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var loc models.Location
	query := `SELECT id, latitude, longitude, name, country, timezone, user_id, type, create_time
		FROM locations
		WHERE user_id = $1 AND type = $2
			AND latitude = $3 AND longitude = $4
			AND name = $5 AND country = $6 AND timezone = $7
		LIMIT 1`
	err := r.db.GetContext(ctx, &loc, query,
		userID, models.KindSavedLocation, q.Latitude, q.Longitude, q.Name, q.Country, q.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("failed to look up saved location", err)
	}
	return &loc, nil
}
