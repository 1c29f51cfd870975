package models

import (
	"time"

	"github.com/google/uuid"
)

// Observed audit action vocabulary. The column is free-form and callers may
// record actions outside this list.
const (
	ActionCreation     = "creation"
	ActionModification = "modification"
	ActionDeletion     = "deletion"
	ActionDelivery     = "delivery"
	ActionScheduling   = "scheduling"
	ActionDownload     = "download"
	ActionLogin        = "login"
	ActionLogout       = "logout"
	ActionGeneration   = "generation"
)

// SystemActor is the fallback actor name for actions without a known principal,
// such as worker-initiated schedule runs.
const SystemActor = "System"

// AuditEntry is a request to record one audit event. ActorName and Action are
// mandatory; everything else is optional.
type AuditEntry struct {
	ActorID       *uuid.UUID
	ActorName     string
	Action        string
	AffectedTable *string
	AffectedID    *string
	Details       map[string]any
}

// AuditRecord is a stored audit event with its details decoded back to
// structured form. Records are append-only: never updated or deleted.
type AuditRecord struct {
	ID            int64          `json:"id"`
	ActorID       *uuid.UUID     `json:"actor_id,omitempty"`
	ActorName     string         `json:"actor_name"`
	Action        string         `json:"action"`
	AffectedTable *string        `json:"affected_table,omitempty"`
	AffectedID    *string        `json:"affected_id,omitempty"`
	Details       map[string]any `json:"details"`
	CreatedAt     time.Time      `json:"created_at"`
}
