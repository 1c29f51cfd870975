package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

// ErrInsufficientStock is returned when a delivery would take a product's
// quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `id, name, quantity, category, supplier, expires_at, warehouse_id, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO products (name, quantity, category, supplier, expires_at, warehouse_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Quantity, p.Category, p.Supplier, p.ExpiresAt, p.WarehouseID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity, &p.Category, &p.Supplier, &p.ExpiresAt,
		&p.WarehouseID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *models.Product) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE products SET name = $1, quantity = $2, category = $3, supplier = $4,
		       expires_at = $5, warehouse_id = $6, updated_at = now()
		WHERE id = $7
	`, p.Name, p.Quantity, p.Category, p.Supplier, p.ExpiresAt, p.WarehouseID, p.ID)
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

// AdjustQuantity changes a product's stock by delta (negative for
// deliveries). The guard in the WHERE clause keeps concurrent deliveries from
// driving the quantity negative.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET quantity = quantity + $1, updated_at = now()
		WHERE id = $2 AND quantity + $1 >= 0
	`, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	return r.scanList(ctx, `SELECT `+productColumns+` FROM products ORDER BY name ASC`)
}

func (r *ProductRepo) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	return r.scanList(ctx,
		`SELECT `+productColumns+` FROM products WHERE quantity < $1 ORDER BY quantity ASC`, threshold)
}

func (r *ProductRepo) Expiring(ctx context.Context, withinDays int) ([]models.Product, error) {
	return r.scanList(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE expires_at IS NOT NULL
		  AND expires_at <= now() + make_interval(days => $1)
		ORDER BY expires_at ASC`, withinDays)
}

// History returns every product together with its total delivered quantity.
func (r *ProductRepo) History(ctx context.Context) ([]models.ProductHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.quantity, p.category, p.supplier, p.expires_at,
		       p.warehouse_id, p.created_at, p.updated_at,
		       COALESCE(d.total, 0) AS delivered_total
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total
			FROM deliveries
			GROUP BY product_id
		) d ON d.product_id = p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ProductHistory
	for rows.Next() {
		var h models.ProductHistory
		if err := rows.Scan(&h.ID, &h.Name, &h.Quantity, &h.Category, &h.Supplier,
			&h.ExpiresAt, &h.WarehouseID, &h.CreatedAt, &h.UpdatedAt, &h.DeliveredTotal); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

func (r *ProductRepo) scanList(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Category, &p.Supplier,
			&p.ExpiresAt, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// IsNotFound reports whether err is the driver's no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
