package services

import (
	"github.com/google/uuid"
	"github.com/stockward/backend/internal/models"
)

// Actor is the verified principal a mutation is attributed to. On API
// requests it is resolved from JWT claims; the worker uses System().
type Actor struct {
	ID   *uuid.UUID
	Name string
}

// System is the actor for actions without a human principal, such as
// worker-executed delivery schedules.
func System() Actor {
	return Actor{Name: models.SystemActor}
}

// auditRef builds the affected table/record pointers for an audit entry.
func auditRef(table, recordID string) (*string, *string) {
	return &table, &recordID
}
