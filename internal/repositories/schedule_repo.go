package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type ScheduleRepo struct {
	pool *pgxpool.Pool
}

func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

func (r *ScheduleRepo) Create(ctx context.Context, s *models.Schedule) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO schedules (product_id, quantity, recipient, frequency, next_delivery_at, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, s.ProductID, s.Quantity, s.Recipient, s.Frequency, s.NextDeliveryAt, s.Description, s.Active,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var s models.Schedule
	err := r.pool.QueryRow(ctx, `
		SELECT s.id, s.product_id, p.name, s.quantity, s.recipient, s.frequency,
		       s.next_delivery_at, s.description, s.active, s.created_at
		FROM schedules s
		JOIN products p ON p.id = s.product_id
		WHERE s.id = $1
	`, id).Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.Recipient,
		&s.Frequency, &s.NextDeliveryAt, &s.Description, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	return err
}

func (r *ScheduleRepo) List(ctx context.Context) ([]models.Schedule, error) {
	return r.scanList(ctx, `
		SELECT s.id, s.product_id, p.name, s.quantity, s.recipient, s.frequency,
		       s.next_delivery_at, s.description, s.active, s.created_at
		FROM schedules s
		JOIN products p ON p.id = s.product_id
		ORDER BY s.next_delivery_at ASC
	`)
}

// ListDue returns active schedules whose next delivery is at or before now.
func (r *ScheduleRepo) ListDue(ctx context.Context, now time.Time) ([]models.Schedule, error) {
	return r.scanList(ctx, `
		SELECT s.id, s.product_id, p.name, s.quantity, s.recipient, s.frequency,
		       s.next_delivery_at, s.description, s.active, s.created_at
		FROM schedules s
		JOIN products p ON p.id = s.product_id
		WHERE s.active AND s.next_delivery_at <= $1
		ORDER BY s.next_delivery_at ASC
	`, now)
}

// Advance moves a schedule's next occurrence forward after a run.
func (r *ScheduleRepo) Advance(ctx context.Context, id uuid.UUID, next time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE schedules SET next_delivery_at = $1 WHERE id = $2`, next, id)
	return err
}

func (r *ScheduleRepo) scanList(ctx context.Context, query string, args ...any) ([]models.Schedule, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.Recipient,
			&s.Frequency, &s.NextDeliveryAt, &s.Description, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
