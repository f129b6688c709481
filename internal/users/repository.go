package users

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListUsersFilter, page shared.Pagination) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, email, name, passwordHash string, role auth.Role) (User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest, passwordHash *string) (User, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, name, role, is_active, email_verified, last_login, failed_login_attempts, locked_until, created_at, updated_at`

func (r *repository) List(ctx context.Context, filter ListUsersFilter, page shared.Pagination) ([]User, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Role != "" {
		argCount++
		where += ` AND role = $` + strconv.Itoa(argCount)
		args = append(args, string(filter.Role))
	}
	if filter.IsActive != nil {
		argCount++
		where += ` AND is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filter.IsActive)
	}
	if filter.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR email ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM admin_users` + where + ` ORDER BY created_at DESC`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, page.PerPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM admin_users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return u, err
}

func (r *repository) Create(ctx context.Context, email, name, passwordHash string, role auth.Role) (User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO admin_users (email, name, password_hash, role, is_active, email_verified)
		VALUES ($1, $2, $3, $4, TRUE, FALSE)
		RETURNING `+userColumns, email, name, passwordHash, string(role))
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return User{}, shared.ErrDuplicate
	}
	return u, err
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateUserRequest, passwordHash *string) (User, error) {
	set := `updated_at = NOW()`
	args := []interface{}{}
	argCount := 0

	if req.Email != nil {
		argCount++
		set += `, email = $` + strconv.Itoa(argCount)
		args = append(args, *req.Email)
	}
	if req.Name != nil {
		argCount++
		set += `, name = $` + strconv.Itoa(argCount)
		args = append(args, *req.Name)
	}
	if passwordHash != nil {
		argCount++
		set += `, password_hash = $` + strconv.Itoa(argCount)
		args = append(args, *passwordHash)
	}
	if req.Role != nil {
		argCount++
		set += `, role = $` + strconv.Itoa(argCount)
		args = append(args, string(*req.Role))
	}
	if req.IsActive != nil {
		argCount++
		set += `, is_active = $` + strconv.Itoa(argCount)
		args = append(args, *req.IsActive)
	}
	if req.EmailVerified != nil {
		argCount++
		set += `, email_verified = $` + strconv.Itoa(argCount)
		args = append(args, *req.EmailVerified)
	}

	argCount++
	args = append(args, id)
	row := r.db.QueryRow(ctx, `UPDATE admin_users SET `+set+` WHERE id = $`+strconv.Itoa(argCount)+` RETURNING `+userColumns, args...)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	if isUniqueViolation(err) {
		return User{}, shared.ErrDuplicate
	}
	return u, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u           User
		role        string
		lastLogin   pgtype.Timestamptz
		lockedUntil pgtype.Timestamptz
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.IsActive, &u.EmailVerified,
		&lastLogin, &u.FailedLoginAttempts, &lockedUntil, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	u.Role = auth.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		u.LastLogin = &t
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time.UTC()
		u.LockedUntil = &t
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
