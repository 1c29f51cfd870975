package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRow is an audit record as persisted: the details payload is still in
// its serialized text form.
type AuditRow struct {
	ID            int64
	ActorID       *uuid.UUID
	ActorName     string
	Action        string
	AffectedTable *string
	AffectedID    *string
	Details       string
	CreatedAt     time.Time
}

// AuditFilter narrows an audit read. All fields are optional and combined
// with AND. Filters change scope, never order: reads are always newest-first.
type AuditFilter struct {
	ActorNameContains string
	Action            string
	From              *time.Time
	To                *time.Time
}

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Insert appends one audit row and returns its storage-assigned id. The
// audit_log table is append-only; no update or delete statement exists for it
// anywhere in the codebase.
func (r *AuditRepo) Insert(ctx context.Context, row AuditRow) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (actor_id, actor_name, action, affected_table, affected_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, row.ActorID, row.ActorName, row.Action, row.AffectedTable, row.AffectedID, row.Details).Scan(&id)
	return id, err
}

func (r *AuditRepo) Select(ctx context.Context, f AuditFilter) ([]AuditRow, error) {
	query := `
		SELECT id, actor_id, actor_name, action, affected_table, affected_id, details, created_at
		FROM audit_log
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.ActorNameContains != "" {
		where = append(where, fmt.Sprintf("actor_name ILIKE '%%' || $%d || '%%'", argIdx))
		args = append(args, f.ActorNameContains)
		argIdx++
	}
	if f.Action != "" {
		where = append(where, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, f.Action)
		argIdx++
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *f.To)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AuditRow
	for rows.Next() {
		var row AuditRow
		if err := rows.Scan(&row.ID, &row.ActorID, &row.ActorName, &row.Action,
			&row.AffectedTable, &row.AffectedID, &row.Details, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
