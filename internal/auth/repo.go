package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error
	RecordLoginFailure(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches an account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*AdminUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, is_active, email_verified,
		       last_login, failed_login_attempts, locked_until, created_at, updated_at
		FROM admin_users
		WHERE LOWER(email) = LOWER($1)`, email)

	var user AdminUser
	var role string
	var lastLogin, lockedUntil pgtype.Timestamptz
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &role,
		&user.IsActive, &user.EmailVerified,
		&lastLogin, &user.FailedLoginAttempts, &lockedUntil,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	user.Role = Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		user.LockedUntil = &t
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	return &user, nil
}

// RecordLoginSuccess resets the failure counter and stamps last_login.
func (r *PGRepository) RecordLoginSuccess(ctx context.Context, id int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_users
		SET failed_login_attempts = 0, locked_until = NULL, last_login = $2, updated_at = NOW()
		WHERE id = $1`, id, at.UTC())
	return err
}

// RecordLoginFailure stores the incremented failure counter and, once the
// lock threshold is reached, the lock deadline.
func (r *PGRepository) RecordLoginFailure(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	var until pgtype.Timestamptz
	if lockedUntil != nil {
		until = pgtype.Timestamptz{Time: lockedUntil.UTC(), Valid: true}
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_users
		SET failed_login_attempts = $2, locked_until = $3, updated_at = NOW()
		WHERE id = $1`, id, attempts, until)
	return err
}

var _ Repository = (*PGRepository)(nil)
