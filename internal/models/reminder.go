package models

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	RemindAt    time.Time  `json:"remind_at"`
	Description *string    `json:"description,omitempty"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	NotifiedAt  *time.Time `json:"notified_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
