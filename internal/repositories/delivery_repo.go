package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type DeliveryRepo struct {
	pool *pgxpool.Pool
}

func NewDeliveryRepo(pool *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *models.Delivery) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO deliveries (product_id, quantity, recipient)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, d.ProductID, d.Quantity, d.Recipient).Scan(&d.ID, &d.CreatedAt)
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	var d models.Delivery
	err := r.pool.QueryRow(ctx, `
		SELECT d.id, d.product_id, p.name, d.quantity, d.recipient, d.created_at
		FROM deliveries d
		JOIN products p ON p.id = d.product_id
		WHERE d.id = $1
	`, id).Scan(&d.ID, &d.ProductID, &d.ProductName, &d.Quantity, &d.Recipient, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *models.Delivery) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE deliveries SET product_id = $1, quantity = $2, recipient = $3
		WHERE id = $4
	`, d.ProductID, d.Quantity, d.Recipient, d.ID)
	return err
}

func (r *DeliveryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	return err
}

func (r *DeliveryRepo) List(ctx context.Context) ([]models.Delivery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.product_id, p.name, d.quantity, d.recipient, d.created_at
		FROM deliveries d
		JOIN products p ON p.id = d.product_id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []models.Delivery
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ProductName, &d.Quantity, &d.Recipient, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// ListBetween returns deliveries created inside [from, to], oldest first, for
// report generation.
func (r *DeliveryRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Delivery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.product_id, p.name, d.quantity, d.recipient, d.created_at
		FROM deliveries d
		JOIN products p ON p.id = d.product_id
		WHERE d.created_at >= $1 AND d.created_at <= $2
		ORDER BY d.created_at ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []models.Delivery
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ProductName, &d.Quantity, &d.Recipient, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
