package tasks

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListTasksFilter, page shared.Pagination) ([]Task, int, error)
	Get(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, req CreateTaskRequest, createdBy int64) (Task, error)
	Update(ctx context.Context, id int64, req UpdateTaskRequest) (Task, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const taskColumns = `id, title, description, status, priority, assignee_id, due_date, created_by, created_at, updated_at`

func (r *repository) List(ctx context.Context, filter ListTasksFilter, page shared.Pagination) ([]Task, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		argCount++
		where += ` AND priority = $` + strconv.Itoa(argCount)
		args = append(args, string(filter.Priority))
	}
	if filter.AssigneeID != nil {
		argCount++
		where += ` AND assignee_id = $` + strconv.Itoa(argCount)
		args = append(args, *filter.AssigneeID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ORDER BY due_date ASC NULLS LAST, created_at DESC`
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

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, req CreateTaskRequest, createdBy int64) (Task, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, priority, assignee_id, due_date, created_by)
		VALUES ($1, $2, 'todo', $3, $4, $5, $6)
		RETURNING `+taskColumns,
		req.Title, req.Description, string(req.Priority), req.AssigneeID, req.DueDate, createdBy)
	return scanTask(row)
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateTaskRequest) (Task, error) {
	set := `updated_at = NOW()`
	args := []interface{}{}
	argCount := 0

	if req.Title != nil {
		argCount++
		set += `, title = $` + strconv.Itoa(argCount)
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		argCount++
		set += `, description = $` + strconv.Itoa(argCount)
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		argCount++
		set += `, status = $` + strconv.Itoa(argCount)
		args = append(args, string(*req.Status))
	}
	if req.Priority != nil {
		argCount++
		set += `, priority = $` + strconv.Itoa(argCount)
		args = append(args, string(*req.Priority))
	}
	if req.AssigneeID != nil {
		argCount++
		set += `, assignee_id = $` + strconv.Itoa(argCount)
		args = append(args, *req.AssigneeID)
	}
	if req.DueDate != nil {
		argCount++
		set += `, due_date = $` + strconv.Itoa(argCount)
		args = append(args, *req.DueDate)
	}

	argCount++
	args = append(args, id)
	row := r.db.QueryRow(ctx, `UPDATE tasks SET `+set+` WHERE id = $`+strconv.Itoa(argCount)+` RETURNING `+taskColumns, args...)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (Task, error) {
	var (
		t        Task
		status   string
		priority string
		assignee pgtype.Int8
		due      pgtype.Timestamptz
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &assignee, &due, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}
	t.Status = Status(status)
	t.Priority = Priority(priority)
	if assignee.Valid {
		id := assignee.Int64
		t.AssigneeID = &id
	}
	if due.Valid {
		d := due.Time.UTC()
		t.DueDate = &d
	}
	return t, nil
}
