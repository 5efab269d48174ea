package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"weatherapp/server/internal/api/apperror"
	"weatherapp/server/internal/api/models"
)

var tracer = otel.Tracer("repository.api")

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// userColumns is the fixed order mutable columns are assembled into an UPDATE
// statement. Anything outside this list never reaches SQL.
var userColumns = []string{"username", "email", "password", "preferred_units", "save_search_history"}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePartial(ctx context.Context, userID string, fields map[string]any) error
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
}

type postgresUserRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewUserRepository creates a new Postgres-based UserRepository. Every call
// is bounded by the given timeout.
func NewUserRepository(db *sqlx.DB, timeout time.Duration) UserRepository {
	return &postgresUserRepository{db: db, timeout: timeout}
}

// Create inserts a new user row. The email unique constraint is the only
// duplicate guard; a violation surfaces as the typed DuplicateEmail error so
// concurrent signups with the same email cannot both succeed.
func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.Create")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO "user" (id, username, email, password, preferred_units, save_search_history)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password, user.PreferredUnits, user.SaveSearchHistory)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicateEmail("user with email already exists")
		}
		return storeErr("failed to create user", err)
	}
	return nil
}

// GetByEmail retrieves a user by exact email match. A missing row is not an
// error; the caller decides what absence means.
func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetByEmail")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	query := `SELECT id, username, email, password, preferred_units, save_search_history
		FROM "user" WHERE email = $1`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("failed to get user by email", err)
	}
	return &user, nil
}

// UpdatePartial applies the given column values to one user row. The SET
// list is assembled strictly from userColumns in order; a field outside the
// list is a caller bug and is rejected before any SQL runs.
func (r *postgresUserRepository) UpdatePartial(ctx context.Context, userID string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "UserRepository.UpdatePartial")
	defer span.End()

	if len(fields) == 0 {
		return apperror.NewValidation("no fields to update")
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, col := range userColumns {
		value, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(assignments) != len(fields) {
		return apperror.NewValidation("field is not updatable")
	}
	args = append(args, userID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE "user" SET %s WHERE id = $%d`, strings.Join(assignments, ", "), len(args))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicateEmail("user with email already exists")
		}
		return storeErr("failed to update user", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperror.NewNotFound("user not found")
	}
	return nil
}

// GetSettings reads the preference fields for one user.
func (r *postgresUserRepository) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetSettings")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var settings models.Settings
	query := `SELECT preferred_units, save_search_history FROM "user" WHERE id = $1`
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, storeErr("failed to get settings", err)
	}
	return &settings, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// storeErr classifies a driver error: an exceeded deadline is its own failure
// kind, everything else is wrapped for the handler boundary to report as an
// internal fault.
func storeErr(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewTimeout("store call timed out", err)
	}
	return fmt.Errorf("%s: %w", message, err)
}
