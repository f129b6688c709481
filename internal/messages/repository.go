package messages

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListMessagesFilter, page shared.Pagination) ([]Message, int, error)
	Get(ctx context.Context, id int64) (Message, error)
	Create(ctx context.Context, req SubmitMessageRequest) (Message, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Message, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const messageColumns = `id, name, email, subject, body, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, filter ListMessagesFilter, page shared.Pagination) ([]Message, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, string(filter.Status))
	}
	if filter.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR email ILIKE $` + strconv.Itoa(argCount) + ` OR subject ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + ` FROM contact_messages` + where + ` ORDER BY created_at DESC`
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

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Message, error) {
	row := r.db.QueryRow(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Create(ctx context.Context, req SubmitMessageRequest) (Message, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, body, status)
		VALUES ($1, $2, $3, $4, 'new')
		RETURNING `+messageColumns, req.Name, req.Email, req.Subject, req.Body)
	return scanMessage(row)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) (Message, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE contact_messages SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+messageColumns, string(status), id)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanMessage(row pgx.Row) (Message, error) {
	var (
		m      Message
		status string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Message{}, err
	}
	m.Status = Status(status)
	return m, nil
}
