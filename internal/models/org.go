package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is an organizational unit, the multi-tenancy root. Users and
// warehouses hang off a unit.
type Unit struct {
	ID          uuid.UUID `json:"id"`
	Code        *string   `json:"code,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Warehouse struct {
	ID        uuid.UUID  `json:"id"`
	UnitID    *uuid.UUID `json:"unit_id,omitempty"`
	Name      string     `json:"name"`
	Location  *string    `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
