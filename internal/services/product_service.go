package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativeQuantity    = errors.New("quantity cannot be negative")
)

type ProductService struct {
	products *repositories.ProductRepo
	audit    *AuditService
	log      *zap.Logger
}

func NewProductService(products *repositories.ProductRepo, audit *AuditService, log *zap.Logger) *ProductService {
	return &ProductService{products: products, audit: audit, log: log}
}

func (s *ProductService) Create(ctx context.Context, actor Actor, p *models.Product) error {
	if p.Name == "" {
		return ErrProductNameRequired
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}

	if err := s.products.Create(ctx, p); err != nil {
		return err
	}

	tbl, rec := auditRef("products", p.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionCreation,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": p.Name, "quantity": p.Quantity},
	})
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	return s.products.LowStock(ctx, threshold)
}

func (s *ProductService) Expiring(ctx context.Context, withinDays int) ([]models.Product, error) {
	return s.products.Expiring(ctx, withinDays)
}

func (s *ProductService) History(ctx context.Context) ([]models.ProductHistory, error) {
	return s.products.History(ctx)
}

// Update replaces a product's fields and audits only the fields that changed.
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, p *models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, ErrProductNameRequired
	}
	if p.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ID = id
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	changes := fieldChanges(productFields(existing), productFields(p))
	tbl, rec := auditRef("products", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionModification,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": p.Name, "changes": changes},
	})
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("products", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"name": existing.Name, "quantity": existing.Quantity},
	})
	return nil
}

func productFields(p *models.Product) map[string]any {
	return map[string]any{
		"name":         p.Name,
		"quantity":     p.Quantity,
		"category":     strVal(p.Category),
		"supplier":     strVal(p.Supplier),
		"expires_at":   timeVal(p.ExpiresAt),
		"warehouse_id": uuidVal(p.WarehouseID),
	}
}
