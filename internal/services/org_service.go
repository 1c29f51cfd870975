package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var ErrNameRequired = errors.New("name is required")

// OrgService manages the organizational catalog: units and the warehouses
// that belong to them. Superadmin-only surface.
type OrgService struct {
	units      *repositories.UnitRepo
	warehouses *repositories.WarehouseRepo
	audit      *AuditService
	log        *zap.Logger
}

func NewOrgService(units *repositories.UnitRepo, warehouses *repositories.WarehouseRepo, audit *AuditService, log *zap.Logger) *OrgService {
	return &OrgService{units: units, warehouses: warehouses, audit: audit, log: log}
}

func (s *OrgService) CreateUnit(ctx context.Context, actor Actor, u *models.Unit) error {
	if u.Name == "" {
		return ErrNameRequired
	}

	if err := s.units.Create(ctx, u); err != nil {
		return err
	}

	tbl, rec := auditRef("units", u.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionCreation,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": u.Name, "code": strVal(u.Code)},
	})
	return nil
}

func (s *OrgService) ListUnits(ctx context.Context) ([]models.Unit, error) {
	return s.units.List(ctx)
}

func (s *OrgService) DeleteUnit(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.units.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.units.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("units", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": existing.Name},
	})
	return nil
}

func (s *OrgService) CreateWarehouse(ctx context.Context, actor Actor, w *models.Warehouse) error {
	if w.Name == "" {
		return ErrNameRequired
	}

	if err := s.warehouses.Create(ctx, w); err != nil {
		return err
	}

	tbl, rec := auditRef("warehouses", w.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionCreation,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": w.Name, "location": strVal(w.Location)},
	})
	return nil
}

func (s *OrgService) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	return s.warehouses.List(ctx)
}

func (s *OrgService) DeleteWarehouse(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.warehouses.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("warehouses", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": existing.Name},
	})
	return nil
}
