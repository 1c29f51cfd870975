package services

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

// memAuditStore mirrors the semantics of repositories.AuditRepo in memory:
// monotonic ids, storage-assigned timestamps, AND-combined filters, newest
// first.
type memAuditStore struct {
	rows      []repositories.AuditRow
	nextID    int64
	now       func() time.Time
	insertErr error
	selectErr error
}

func newMemAuditStore() *memAuditStore {
	return &memAuditStore{now: time.Now}
}

func (m *memAuditStore) Insert(_ context.Context, row repositories.AuditRow) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.nextID++
	row.ID = m.nextID
	row.CreatedAt = m.now()
	m.rows = append(m.rows, row)
	return row.ID, nil
}

func (m *memAuditStore) Select(_ context.Context, f repositories.AuditFilter) ([]repositories.AuditRow, error) {
	if m.selectErr != nil {
		return nil, m.selectErr
	}

	var out []repositories.AuditRow
	for _, row := range m.rows {
		if f.ActorNameContains != "" &&
			!strings.Contains(strings.ToLower(row.ActorName), strings.ToLower(f.ActorNameContains)) {
			continue
		}
		if f.Action != "" && row.Action != f.Action {
			continue
		}
		if f.From != nil && row.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && row.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func newTestAuditService() (*AuditService, *memAuditStore) {
	store := newMemAuditStore()
	return NewAuditService(store, zap.NewNop()), store
}

func strPtr(s string) *string { return &s }

func TestRecordMandatoryFields(t *testing.T) {
	svc, store := newTestAuditService()
	ctx := context.Background()

	tests := []struct {
		name  string
		entry models.AuditEntry
	}{
		{"missing actor name", models.AuditEntry{ActorName: "", Action: models.ActionCreation}},
		{"missing action", models.AuditEntry{ActorName: "Ana", Action: ""}},
		{"whitespace actor name", models.AuditEntry{ActorName: "   ", Action: models.ActionCreation}},
		{"whitespace action", models.AuditEntry{ActorName: "Ana", Action: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := svc.Record(ctx, tt.entry); id != nil {
				t.Errorf("Record = %v, want nil", *id)
			}
		})
	}

	if len(store.rows) != 0 {
		t.Errorf("store has %d rows, want 0: no write may happen for a rejected entry", len(store.rows))
	}
}

func TestRecordDefaultsDetailsToEmptyObject(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	id := svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionLogin})
	if id == nil {
		t.Fatal("Record = nil, want id")
	}

	records, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !reflect.DeepEqual(records[0].Details, map[string]any{}) {
		t.Errorf("Details = %#v, want empty object", records[0].Details)
	}
}

func TestRecordAbsorbsStoreFailure(t *testing.T) {
	svc, store := newTestAuditService()
	store.insertErr = errors.New("connection refused")

	id := svc.Record(context.Background(), models.AuditEntry{
		ActorName: "Ana",
		Action:    models.ActionCreation,
		Details:   map[string]any{"name": "Casco"},
	})
	if id != nil {
		t.Errorf("Record = %v, want nil when the store is unavailable", *id)
	}
}

func TestRecordReturnsMonotonicIDs(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		id := svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionCreation})
		if id == nil {
			t.Fatal("Record = nil, want id")
		}
		if *id <= last {
			t.Errorf("id %d not greater than previous %d", *id, last)
		}
		last = *id
	}
}

func TestQueryOrdersNewestFirst(t *testing.T) {
	svc, store := newTestAuditService()
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return at }
		svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionCreation})
	}

	records, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records not newest-first at index %d: %v before %v",
				i, records[i-1].CreatedAt, records[i].CreatedAt)
		}
	}
}

func TestQueryFilterComposition(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionCreation})
	svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionDeletion})
	svc.Record(ctx, models.AuditEntry{ActorName: "Luis", Action: models.ActionCreation})

	records, err := svc.Query(ctx, repositories.AuditFilter{
		ActorNameContains: "an",
		Action:            models.ActionCreation,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want exactly 1", len(records))
	}
	if records[0].ActorName != "Ana" || records[0].Action != models.ActionCreation {
		t.Errorf("got %s/%s, want Ana/%s", records[0].ActorName, records[0].Action, models.ActionCreation)
	}
}

func TestQueryDateRange(t *testing.T) {
	svc, store := newTestAuditService()
	ctx := context.Background()

	day := func(n int) time.Time {
		return time.Date(2025, 5, n, 9, 0, 0, 0, time.UTC)
	}
	for n := 1; n <= 3; n++ {
		at := day(n)
		store.now = func() time.Time { return at }
		svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionModification})
	}

	from, to := day(2), day(3)
	records, err := svc.Query(ctx, repositories.AuditFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.CreatedAt.Before(from) || rec.CreatedAt.After(to) {
			t.Errorf("record at %v outside [%v, %v]", rec.CreatedAt, from, to)
		}
	}
	if records[0].CreatedAt.Before(records[1].CreatedAt) {
		t.Error("range results not newest-first")
	}
}

func TestDetailsRoundTrip(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	details := map[string]any{
		"name":     "Casco",
		"quantity": float64(10),
		"changes": map[string]any{
			"quantity": map[string]any{"old": float64(10), "new": float64(4)},
		},
		"tags": []any{"safety", "headgear"},
	}

	if id := svc.Record(ctx, models.AuditEntry{
		ActorName:     "Ana",
		Action:        models.ActionCreation,
		AffectedTable: strPtr("products"),
		Details:       details,
	}); id == nil {
		t.Fatal("Record = nil, want id")
	}

	records, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !reflect.DeepEqual(records[0].Details, details) {
		t.Errorf("Details = %#v, want %#v", records[0].Details, details)
	}
}

func TestQueryRejectsMalformedDetails(t *testing.T) {
	svc, store := newTestAuditService()
	ctx := context.Background()

	svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionCreation})
	// Corrupt a stored payload behind the service's back.
	store.rows[0].Details = "{not json"

	_, err := svc.Query(ctx, repositories.AuditFilter{})
	if err == nil {
		t.Fatal("Query = nil error, want MalformedDetailsError")
	}
	var malformed *MalformedDetailsError
	if !errors.As(err, &malformed) {
		t.Fatalf("Query error = %T, want *MalformedDetailsError", err)
	}
	if malformed.RecordID != store.rows[0].ID {
		t.Errorf("RecordID = %d, want %d", malformed.RecordID, store.rows[0].ID)
	}
}

func TestRecordsAreImmutableOnRead(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	svc.Record(ctx, models.AuditEntry{
		ActorName: "Ana",
		Action:    models.ActionCreation,
		Details:   map[string]any{"name": "Casco"},
	})

	first, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// Mutating a returned record must not leak back into storage.
	first[0].Details["name"] = "tampered"
	first[0].ActorName = "tampered"

	second, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if second[0].ActorName != "Ana" {
		t.Errorf("ActorName = %q, want %q", second[0].ActorName, "Ana")
	}
	if !reflect.DeepEqual(second[0].Details, map[string]any{"name": "Casco"}) {
		t.Errorf("Details = %#v, want original payload", second[0].Details)
	}
}

func TestEndToEndProductCreation(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	actorID := uuid.New()
	recordID := uuid.New().String()
	svc.Record(ctx, models.AuditEntry{
		ActorID:       &actorID,
		ActorName:     "Ana",
		Action:        models.ActionCreation,
		AffectedTable: strPtr("products"),
		AffectedID:    &recordID,
		Details:       map[string]any{"name": "Casco", "quantity": float64(10)},
	})

	records, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	top := records[0]
	if top.Action != models.ActionCreation {
		t.Errorf("Action = %q, want %q", top.Action, models.ActionCreation)
	}
	if top.AffectedTable == nil || *top.AffectedTable != "products" {
		t.Errorf("AffectedTable = %v, want products", top.AffectedTable)
	}
	if top.Details["name"] != "Casco" {
		t.Errorf(`Details["name"] = %v, want Casco`, top.Details["name"])
	}
}

func TestRejectedEntryLeavesHistoryUnchanged(t *testing.T) {
	svc, _ := newTestAuditService()
	ctx := context.Background()

	svc.Record(ctx, models.AuditEntry{ActorName: "Ana", Action: models.ActionLogin})
	before, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if id := svc.Record(ctx, models.AuditEntry{Action: models.ActionCreation}); id != nil {
		t.Errorf("Record = %v, want nil", *id)
	}

	after, err := svc.Query(ctx, repositories.AuditFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("history length changed from %d to %d", len(before), len(after))
	}
}
