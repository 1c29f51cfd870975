package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type ReminderRepo struct {
	pool *pgxpool.Pool
}

func NewReminderRepo(pool *pgxpool.Pool) *ReminderRepo {
	return &ReminderRepo{pool: pool}
}

func (r *ReminderRepo) Create(ctx context.Context, m *models.Reminder) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO reminders (title, remind_at, description, product_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.Title, m.RemindAt, m.Description, m.ProductID).Scan(&m.ID, &m.CreatedAt)
}

func (r *ReminderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	var m models.Reminder
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, remind_at, description, product_id, notified_at, created_at
		FROM reminders WHERE id = $1
	`, id).Scan(&m.ID, &m.Title, &m.RemindAt, &m.Description, &m.ProductID, &m.NotifiedAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReminderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	return err
}

func (r *ReminderRepo) List(ctx context.Context) ([]models.Reminder, error) {
	return r.scanList(ctx, `
		SELECT id, title, remind_at, description, product_id, notified_at, created_at
		FROM reminders ORDER BY remind_at ASC
	`)
}

// ListDue returns reminders that have come due and have not been dispatched.
func (r *ReminderRepo) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	return r.scanList(ctx, `
		SELECT id, title, remind_at, description, product_id, notified_at, created_at
		FROM reminders
		WHERE notified_at IS NULL AND remind_at <= $1
		ORDER BY remind_at ASC
	`, now)
}

func (r *ReminderRepo) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE reminders SET notified_at = $1 WHERE id = $2`, at, id)
	return err
}

func (r *ReminderRepo) scanList(ctx context.Context, query string, args ...any) ([]models.Reminder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var m models.Reminder
		if err := rows.Scan(&m.ID, &m.Title, &m.RemindAt, &m.Description, &m.ProductID,
			&m.NotifiedAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, m)
	}
	return reminders, rows.Err()
}
