package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/events"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var (
	ErrRecipientRequired     = errors.New("recipient is required")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrDeliveryProductLocked = errors.New("the product of a delivery cannot be changed")
)

// DeliveryService hands stock out. Every delivery debits the product's
// quantity through the stock guard, so a delivery can never be created
// against stock that is not there.
type DeliveryService struct {
	deliveries *repositories.DeliveryRepo
	products   *repositories.ProductRepo
	audit      *AuditService
	publisher  events.Publisher
	log        *zap.Logger
}

func NewDeliveryService(
	deliveries *repositories.DeliveryRepo,
	products *repositories.ProductRepo,
	audit *AuditService,
	publisher events.Publisher,
	log *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		products:   products,
		audit:      audit,
		publisher:  publisher,
		log:        log,
	}
}

func (s *DeliveryService) Create(ctx context.Context, actor Actor, d *models.Delivery) error {
	if d.Recipient == "" {
		return ErrRecipientRequired
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, d.ProductID)
	if err != nil {
		return err
	}

	if err := s.products.AdjustQuantity(ctx, d.ProductID, -d.Quantity); err != nil {
		return err
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		// Put the stock back so a failed insert does not leak a debit.
		if restoreErr := s.products.AdjustQuantity(ctx, d.ProductID, d.Quantity); restoreErr != nil {
			s.log.Error("failed to restore stock after delivery insert failure",
				zap.String("product_id", d.ProductID.String()), zap.Error(restoreErr))
		}
		return err
	}
	d.ProductName = product.Name

	tbl, rec := auditRef("deliveries", d.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDelivery,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"product":   product.Name,
			"quantity":  d.Quantity,
			"recipient": d.Recipient,
		},
	})

	s.publish(ctx, events.EventDeliveryCreated, map[string]any{
		"delivery_id": d.ID.String(),
		"product":     product.Name,
		"quantity":    d.Quantity,
		"recipient":   d.Recipient,
	})
	return nil
}

func (s *DeliveryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	return s.deliveries.GetByID(ctx, id)
}

func (s *DeliveryService) List(ctx context.Context) ([]models.Delivery, error) {
	return s.deliveries.List(ctx)
}

// Update corrects a delivery's quantity or recipient. The stock debit is
// re-balanced by the quantity delta; moving a delivery to another product is
// not supported.
func (s *DeliveryService) Update(ctx context.Context, actor Actor, id uuid.UUID, d *models.Delivery) (*models.Delivery, error) {
	if d.Recipient == "" {
		return nil, ErrRecipientRequired
	}
	if d.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.ProductID != existing.ProductID {
		return nil, ErrDeliveryProductLocked
	}

	if delta := existing.Quantity - d.Quantity; delta != 0 {
		if err := s.products.AdjustQuantity(ctx, existing.ProductID, delta); err != nil {
			return nil, err
		}
	}

	d.ID = id
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	changes := fieldChanges(
		map[string]any{"quantity": existing.Quantity, "recipient": existing.Recipient},
		map[string]any{"quantity": d.Quantity, "recipient": d.Recipient},
	)
	tbl, rec := auditRef("deliveries", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionModification,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"product": existing.ProductName, "changes": changes},
	})
	return s.deliveries.GetByID(ctx, id)
}

// Delete removes a delivery and credits its quantity back to the product.
func (s *DeliveryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.deliveries.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.products.AdjustQuantity(ctx, existing.ProductID, existing.Quantity); err != nil {
		s.log.Error("failed to restore stock for deleted delivery",
			zap.String("delivery_id", id.String()), zap.Error(err))
	}

	tbl, rec := auditRef("deliveries", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"product":   existing.ProductName,
			"quantity":  existing.Quantity,
			"recipient": existing.Recipient,
		},
	})
	return nil
}

func (s *DeliveryService) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.StreamInventory, events.Event{Type: eventType, Payload: payload}); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
