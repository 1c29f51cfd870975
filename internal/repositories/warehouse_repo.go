package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type WarehouseRepo struct {
	pool *pgxpool.Pool
}

func NewWarehouseRepo(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

func (r *WarehouseRepo) Create(ctx context.Context, w *models.Warehouse) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO warehouses (unit_id, name, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, w.UnitID, w.Name, w.Location).Scan(&w.ID, &w.CreatedAt)
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var w models.Warehouse
	err := r.pool.QueryRow(ctx, `
		SELECT id, unit_id, name, location, created_at FROM warehouses WHERE id = $1
	`, id).Scan(&w.ID, &w.UnitID, &w.Name, &w.Location, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	return err
}

func (r *WarehouseRepo) List(ctx context.Context) ([]models.Warehouse, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, unit_id, name, location, created_at FROM warehouses ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []models.Warehouse
	for rows.Next() {
		var w models.Warehouse
		if err := rows.Scan(&w.ID, &w.UnitID, &w.Name, &w.Location, &w.CreatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}
