package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Category    *string    `json:"category,omitempty"`
	Supplier    *string    `json:"supplier,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductHistory is a product joined with how much of it has been delivered.
type ProductHistory struct {
	Product
	DeliveredTotal int `json:"delivered_total"`
}
