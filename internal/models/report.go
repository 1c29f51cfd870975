package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportInventory  = "inventory"
	ReportDeliveries = "deliveries"
	ReportExpiry     = "expiry"
)

type Report struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Format      string    `json:"format"`
	FilePath    string    `json:"-"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	GeneratedBy string    `json:"generated_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func IsValidReportKind(k string) bool {
	switch k {
	case ReportInventory, ReportDeliveries, ReportExpiry:
		return true
	}
	return false
}
