package meetings

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListMeetingsFilter, page shared.Pagination) ([]Meeting, int, error)
	Get(ctx context.Context, id int64) (Meeting, error)
	Create(ctx context.Context, req CreateMeetingRequest, createdBy int64) (Meeting, error)
	Update(ctx context.Context, id int64, req UpdateMeetingRequest) (Meeting, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const meetingColumns = `id, title, scheduled_at, location, agenda, minutes, created_by, created_at, updated_at`

func (r *repository) List(ctx context.Context, filter ListMeetingsFilter, page shared.Pagination) ([]Meeting, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.From != nil {
		argCount++
		where += ` AND scheduled_at >= $` + strconv.Itoa(argCount)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		argCount++
		where += ` AND scheduled_at < $` + strconv.Itoa(argCount)
		args = append(args, *filter.To)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM meetings`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings` + where + ` ORDER BY scheduled_at DESC`
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

	var out []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Meeting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)
	m, err := scanMeeting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Meeting{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Create(ctx context.Context, req CreateMeetingRequest, createdBy int64) (Meeting, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO meetings (title, scheduled_at, location, agenda, minutes, created_by)
		VALUES ($1, $2, $3, $4, '', $5)
		RETURNING `+meetingColumns,
		req.Title, req.ScheduledAt, req.Location, req.Agenda, createdBy)
	return scanMeeting(row)
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateMeetingRequest) (Meeting, error) {
	set := `updated_at = NOW()`
	args := []interface{}{}
	argCount := 0

	if req.Title != nil {
		argCount++
		set += `, title = $` + strconv.Itoa(argCount)
		args = append(args, *req.Title)
	}
	if req.ScheduledAt != nil {
		argCount++
		set += `, scheduled_at = $` + strconv.Itoa(argCount)
		args = append(args, *req.ScheduledAt)
	}
	if req.Location != nil {
		argCount++
		set += `, location = $` + strconv.Itoa(argCount)
		args = append(args, *req.Location)
	}
	if req.Agenda != nil {
		argCount++
		set += `, agenda = $` + strconv.Itoa(argCount)
		args = append(args, *req.Agenda)
	}
	if req.Minutes != nil {
		argCount++
		set += `, minutes = $` + strconv.Itoa(argCount)
		args = append(args, *req.Minutes)
	}

	argCount++
	args = append(args, id)
	row := r.db.QueryRow(ctx, `UPDATE meetings SET `+set+` WHERE id = $`+strconv.Itoa(argCount)+` RETURNING `+meetingColumns, args...)
	m, err := scanMeeting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Meeting{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanMeeting(row pgx.Row) (Meeting, error) {
	var m Meeting
	err := row.Scan(&m.ID, &m.Title, &m.ScheduledAt, &m.Location, &m.Agenda, &m.Minutes, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Meeting{}, err
	}
	m.ScheduledAt = m.ScheduledAt.UTC()
	return m, nil
}
