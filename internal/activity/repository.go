package activity

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter, page shared.Pagination) ([]Entry, int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter, page shared.Pagination) ([]Entry, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.ActorID > 0 {
		argCount++
		where += ` AND a.actor_id = $` + strconv.Itoa(argCount)
		args = append(args, filter.ActorID)
	}
	if filter.Entity != "" {
		argCount++
		where += ` AND a.entity = $` + strconv.Itoa(argCount)
		args = append(args, filter.Entity)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.actor_id, COALESCE(u.name, ''), a.action, a.entity, a.entity_id, a.meta, a.occurred_at
		FROM activity_logs a
		LEFT JOIN admin_users u ON u.id = a.actor_id` + where + `
		ORDER BY a.occurred_at DESC, a.id DESC`
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

	var out []Entry
	for rows.Next() {
		var (
			e    Entry
			meta []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.Action, &e.Entity, &e.EntityID, &meta, &e.OccurredAt); err != nil {
			return nil, 0, err
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &e.Meta)
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}
