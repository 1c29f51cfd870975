package models

import (
	"time"

	"github.com/google/uuid"
)

type Delivery struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	Recipient   string    `json:"recipient"`
	CreatedAt   time.Time `json:"created_at"`
}
