package events

import "context"

// Stream every inventory event is published on.
const StreamInventory = "events:inventory"

// Event types
const (
	EventDeliveryCreated  = "delivery_created"
	EventScheduleExecuted = "schedule_executed"
	EventReminderDue      = "reminder_due"
	EventLowStock         = "low_stock"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
