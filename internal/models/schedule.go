package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Schedule is a recurring delivery: the worker creates a delivery each time
// NextDeliveryAt comes due, then steps it forward by Frequency.
type Schedule struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Quantity       int       `json:"quantity"`
	Recipient      string    `json:"recipient"`
	Frequency      string    `json:"frequency"`
	NextDeliveryAt time.Time `json:"next_delivery_at"`
	Description    *string   `json:"description,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func IsValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// NextAfter returns the first occurrence strictly after now, stepping from
// the current NextDeliveryAt by the schedule's frequency. Stepping repeats
// until the result is in the future so a schedule that was down for several
// periods does not fire once per missed period.
func (s *Schedule) NextAfter(now time.Time) time.Time {
	next := s.NextDeliveryAt
	for !next.After(now) {
		switch s.Frequency {
		case FrequencyDaily:
			next = next.AddDate(0, 0, 1)
		case FrequencyWeekly:
			next = next.AddDate(0, 0, 7)
		case FrequencyMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			// Unknown frequency: push a day forward so the loop terminates.
			next = next.AddDate(0, 0, 1)
		}
	}
	return next
}
