package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	UnitID       *uuid.UUID `json:"unit_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt time.Time  `json:"last_active_at"`
}

func IsValidRole(r string) bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleOperator:
		return true
	}
	return false
}
