package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrMissingAuditFields rejects a recording request before any write is
// attempted: actor name and action are mandatory.
var ErrMissingAuditFields = errors.New("audit entry requires actor name and action")

// MalformedDetailsError is returned by Query when a stored details payload
// cannot be decoded back to structured form. The whole read is rejected so a
// caller never receives a result set mixing structured and raw details.
type MalformedDetailsError struct {
	RecordID int64
	Err      error
}

func (e *MalformedDetailsError) Error() string {
	return fmt.Sprintf("audit record %d has malformed details: %v", e.RecordID, e.Err)
}

func (e *MalformedDetailsError) Unwrap() error { return e.Err }

// AuditStore is the persistence surface the audit service needs. Injected as
// an interface so tests can substitute an in-memory store for the pgx-backed
// repositories.AuditRepo.
type AuditStore interface {
	Insert(ctx context.Context, row repositories.AuditRow) (int64, error)
	Select(ctx context.Context, f repositories.AuditFilter) ([]repositories.AuditRow, error)
}

// AuditService records and reads the append-only audit trail. The write side
// is best-effort: failures are absorbed here so a broken audit store can never
// take down the primary operation that triggered it. The read side fails loud:
// corrupted history surfaces as an error, never as a partial result.
type AuditService struct {
	store AuditStore
	log   *zap.Logger
}

func NewAuditService(store AuditStore, log *zap.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// Record appends one audit event and returns its storage-assigned id, or nil
// when the entry is invalid or the write failed. Nil details become an empty
// object; details that cannot be serialized are replaced with a fallback
// payload rather than losing the record.
func (s *AuditService) Record(ctx context.Context, e models.AuditEntry) *int64 {
	if strings.TrimSpace(e.ActorName) == "" || strings.TrimSpace(e.Action) == "" {
		s.log.Error("audit entry rejected",
			zap.Error(ErrMissingAuditFields),
			zap.String("actor_name", e.ActorName),
			zap.String("action", e.Action))
		return nil
	}

	details := e.Details
	if details == nil {
		details = map[string]any{}
	}

	payload, err := json.Marshal(details)
	if err != nil {
		s.log.Error("audit details not serializable, substituting fallback", zap.Error(err))
		payload = []byte(`{"error":"could not serialize details"}`)
	}

	id, err := s.store.Insert(ctx, repositories.AuditRow{
		ActorID:       e.ActorID,
		ActorName:     e.ActorName,
		Action:        e.Action,
		AffectedTable: e.AffectedTable,
		AffectedID:    e.AffectedID,
		Details:       string(payload),
	})
	if err != nil {
		// Log the full payload so the record can be recovered from logs.
		s.log.Error("audit insert failed",
			zap.Error(err),
			zap.Any("actor_id", e.ActorID),
			zap.String("actor_name", e.ActorName),
			zap.String("action", e.Action),
			zap.Stringp("affected_table", e.AffectedTable),
			zap.Stringp("affected_id", e.AffectedID),
			zap.ByteString("details", payload))
		return nil
	}

	return &id
}

// Query reads audit records, newest first, narrowed by the optional filters.
// Details are decoded back into structured form for every record.
func (s *AuditService) Query(ctx context.Context, f repositories.AuditFilter) ([]models.AuditRecord, error) {
	rows, err := s.store.Select(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	records := make([]models.AuditRecord, 0, len(rows))
	for _, row := range rows {
		var details map[string]any
		if err := json.Unmarshal([]byte(row.Details), &details); err != nil {
			return nil, &MalformedDetailsError{RecordID: row.ID, Err: err}
		}
		records = append(records, models.AuditRecord{
			ID:            row.ID,
			ActorID:       row.ActorID,
			ActorName:     row.ActorName,
			Action:        row.Action,
			AffectedTable: row.AffectedTable,
			AffectedID:    row.AffectedID,
			Details:       details,
			CreatedAt:     row.CreatedAt,
		})
	}
	return records, nil
}
