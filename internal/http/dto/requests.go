package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Products

type CreateProductRequest struct {
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Category    *string    `json:"category,omitempty"`
	Supplier    *string    `json:"supplier,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	WarehouseID *string    `json:"warehouse_id,omitempty"`
}

type UpdateProductRequest struct {
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Category    *string    `json:"category,omitempty"`
	Supplier    *string    `json:"supplier,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	WarehouseID *string    `json:"warehouse_id,omitempty"`
}

// Deliveries

type CreateDeliveryRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Recipient string `json:"recipient"`
}

type UpdateDeliveryRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Recipient string `json:"recipient"`
}

// Schedules

type CreateScheduleRequest struct {
	ProductID      string    `json:"product_id"`
	Quantity       int       `json:"quantity"`
	Recipient      string    `json:"recipient"`
	Frequency      string    `json:"frequency"` // daily / weekly / monthly
	NextDeliveryAt time.Time `json:"next_delivery_at"`
	Description    *string   `json:"description,omitempty"`
}

// Reminders

type CreateReminderRequest struct {
	Title       string    `json:"title"`
	RemindAt    time.Time `json:"remind_at"`
	Description *string   `json:"description,omitempty"`
	ProductID   *string   `json:"product_id,omitempty"`
}

// Admin

type CreateUnitRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateWarehouseRequest struct {
	UnitID   *string `json:"unit_id,omitempty"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Role     string  `json:"role"` // superadmin / admin / operator
	UnitID   *string `json:"unit_id,omitempty"`
}

// Reports

type GenerateReportRequest struct {
	Kind string     `json:"kind"` // inventory / deliveries / expiry
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}
