package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Repository interface {
	Get(ctx context.Context, id int64) (Registration, error)
	Create(ctx context.Context, reg Registration) (Registration, error)
	MarkPaid(ctx context.Context, id int64) (Registration, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const registrationColumns = `id, name, email, attendees, nights, room_tier, meal_plan, amount_cents, currency, status, payment_intent_id, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (Registration, error) {
	row := r.db.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Registration{}, shared.ErrNotFound
	}
	return reg, err
}

func (r *repository) Create(ctx context.Context, reg Registration) (Registration, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO registrations (name, email, attendees, nights, room_tier, meal_plan, amount_cents, currency, status, payment_intent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9)
		RETURNING `+registrationColumns,
		reg.Name, reg.Email, reg.Attendees, reg.Nights, reg.RoomTier, reg.MealPlan,
		reg.AmountCents, reg.Currency, reg.PaymentIntentID)
	return scanRegistration(row)
}

func (r *repository) MarkPaid(ctx context.Context, id int64) (Registration, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE registrations SET status = 'paid', updated_at = NOW()
		WHERE id = $1
		RETURNING `+registrationColumns, id)
	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Registration{}, shared.ErrNotFound
	}
	return reg, err
}

func scanRegistration(row pgx.Row) (Registration, error) {
	var (
		reg    Registration
		status string
	)
	err := row.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Attendees, &reg.Nights,
		&reg.RoomTier, &reg.MealPlan, &reg.AmountCents, &reg.Currency, &status,
		&reg.PaymentIntentID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return Registration{}, err
	}
	reg.Status = Status(status)
	return reg, nil
}
