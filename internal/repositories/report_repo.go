package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockward/backend/internal/models"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Create(ctx context.Context, rep *models.Report) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO reports (name, kind, format, file_path, period_start, period_end, generated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, rep.Name, rep.Kind, rep.Format, rep.FilePath, rep.PeriodStart, rep.PeriodEnd, rep.GeneratedBy,
	).Scan(&rep.ID, &rep.CreatedAt)
}

func (r *ReportRepo) GetByName(ctx context.Context, name string) (*models.Report, error) {
	var rep models.Report
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, kind, format, file_path, period_start, period_end, generated_by, created_at
		FROM reports WHERE name = $1
	`, name).Scan(&rep.ID, &rep.Name, &rep.Kind, &rep.Format, &rep.FilePath,
		&rep.PeriodStart, &rep.PeriodEnd, &rep.GeneratedBy, &rep.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepo) List(ctx context.Context) ([]models.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, kind, format, file_path, period_start, period_end, generated_by, created_at
		FROM reports ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Kind, &rep.Format, &rep.FilePath,
			&rep.PeriodStart, &rep.PeriodEnd, &rep.GeneratedBy, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
