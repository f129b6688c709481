package pages

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, visibleOnly bool) ([]Page, error)
	Update(ctx context.Context, slug string, req UpdatePageRequest) (Page, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const pageColumns = `id, slug, title, visible, position, updated_at`

func (r *repository) List(ctx context.Context, visibleOnly bool) ([]Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages`
	if visibleOnly {
		query += ` WHERE visible`
	}
	query += ` ORDER BY position ASC, slug ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Visible, &p.Position, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, slug string, req UpdatePageRequest) (Page, error) {
	set := `updated_at = NOW()`
	args := []interface{}{}
	argCount := 0

	if req.Title != nil {
		argCount++
		set += `, title = $` + strconv.Itoa(argCount)
		args = append(args, *req.Title)
	}
	if req.Visible != nil {
		argCount++
		set += `, visible = $` + strconv.Itoa(argCount)
		args = append(args, *req.Visible)
	}
	if req.Position != nil {
		argCount++
		set += `, position = $` + strconv.Itoa(argCount)
		args = append(args, *req.Position)
	}

	argCount++
	args = append(args, slug)
	row := r.db.QueryRow(ctx, `UPDATE pages SET `+set+` WHERE slug = $`+strconv.Itoa(argCount)+` RETURNING `+pageColumns, args...)

	var p Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Visible, &p.Position, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Page{}, shared.ErrNotFound
	}
	return p, err
}
