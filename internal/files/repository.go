package files

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListFilesFilter, page shared.Pagination) ([]File, int, error)
	Get(ctx context.Context, id int64) (File, error)
	Create(ctx context.Context, f File) (File, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const fileColumns = `id, name, object_key, content_type, size_bytes, uploaded_by, created_at`

func (r *repository) List(ctx context.Context, filter ListFilesFilter, page shared.Pagination) ([]File, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Search != "" {
		argCount++
		where += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM files`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + fileColumns + ` FROM files` + where + ` ORDER BY created_at DESC`
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

	var out []File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (File, error) {
	row := r.db.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	f, err := scanFile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, shared.ErrNotFound
	}
	return f, err
}

func (r *repository) Create(ctx context.Context, f File) (File, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO files (name, object_key, content_type, size_bytes, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+fileColumns,
		f.Name, f.ObjectKey, f.ContentType, f.SizeBytes, f.UploadedBy)
	return scanFile(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanFile(row pgx.Row) (File, error) {
	var f File
	err := row.Scan(&f.ID, &f.Name, &f.ObjectKey, &f.ContentType, &f.SizeBytes, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return File{}, err
	}
	return f, nil
}
