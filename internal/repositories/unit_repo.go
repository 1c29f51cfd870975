package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type UnitRepo struct {
	pool *pgxpool.Pool
}

func NewUnitRepo(pool *pgxpool.Pool) *UnitRepo {
	return &UnitRepo{pool: pool}
}

func (r *UnitRepo) Create(ctx context.Context, u *models.Unit) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO units (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Code, u.Name, u.Description).Scan(&u.ID, &u.CreatedAt)
}

func (r *UnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var u models.Unit
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, name, description, created_at FROM units WHERE id = $1
	`, id).Scan(&u.ID, &u.Code, &u.Name, &u.Description, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	return err
}

func (r *UnitRepo) List(ctx context.Context) ([]models.Unit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name, description, created_at FROM units ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.Description, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
