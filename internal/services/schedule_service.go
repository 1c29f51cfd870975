package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockward/backend/internal/events"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var ErrInvalidFrequency = errors.New("frequency must be daily, weekly or monthly")

// ScheduleService manages recurring deliveries. RunDue is called from the
// worker and turns every due schedule into a real delivery.
type ScheduleService struct {
	schedules  *repositories.ScheduleRepo
	products   *repositories.ProductRepo
	deliveries *repositories.DeliveryRepo
	audit      *AuditService
	publisher  events.Publisher
	log        *zap.Logger
}

func NewScheduleService(
	schedules *repositories.ScheduleRepo,
	products *repositories.ProductRepo,
	deliveries *repositories.DeliveryRepo,
	audit *AuditService,
	publisher events.Publisher,
	log *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules:  schedules,
		products:   products,
		deliveries: deliveries,
		audit:      audit,
		publisher:  publisher,
		log:        log,
	}
}

func (s *ScheduleService) Create(ctx context.Context, actor Actor, sched *models.Schedule) error {
	if sched.Recipient == "" {
		return ErrRecipientRequired
	}
	if sched.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !models.IsValidFrequency(sched.Frequency) {
		return ErrInvalidFrequency
	}

	product, err := s.products.GetByID(ctx, sched.ProductID)
	if err != nil {
		return err
	}

	sched.Active = true
	if err := s.schedules.Create(ctx, sched); err != nil {
		return err
	}
	sched.ProductName = product.Name

	tbl, rec := auditRef("schedules", sched.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionScheduling,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"product":        product.Name,
			"quantity":       sched.Quantity,
			"recipient":      sched.Recipient,
			"frequency":      sched.Frequency,
			"first_delivery": sched.NextDeliveryAt.Format(time.RFC3339),
		},
	})
	return nil
}

func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	return s.schedules.List(ctx)
}

func (s *ScheduleService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("schedules", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"product":   existing.ProductName,
			"recipient": existing.Recipient,
			"frequency": existing.Frequency,
		},
	})
	return nil
}

// RunDue executes every schedule whose next delivery has come due and returns
// how many deliveries were created. A schedule that cannot run, for example
// because stock ran out, is logged and skipped; the rest still execute.
func (s *ScheduleService) RunDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.schedules.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	executed := 0
	for i := range due {
		sched := &due[i]
		if err := s.execute(ctx, sched, now); err != nil {
			s.log.Warn("schedule execution skipped",
				zap.String("schedule_id", sched.ID.String()),
				zap.String("product", sched.ProductName),
				zap.Error(err))
			continue
		}
		executed++
	}
	return executed, nil
}

func (s *ScheduleService) execute(ctx context.Context, sched *models.Schedule, now time.Time) error {
	if err := s.products.AdjustQuantity(ctx, sched.ProductID, -sched.Quantity); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			// Step past the missed occurrence so the schedule does not
			// retry every run until someone restocks.
			if advErr := s.schedules.Advance(ctx, sched.ID, sched.NextAfter(now)); advErr != nil {
				return advErr
			}
		}
		return err
	}

	delivery := &models.Delivery{
		ProductID: sched.ProductID,
		Quantity:  sched.Quantity,
		Recipient: sched.Recipient,
	}
	if err := s.deliveries.Create(ctx, delivery); err != nil {
		if restoreErr := s.products.AdjustQuantity(ctx, sched.ProductID, sched.Quantity); restoreErr != nil {
			s.log.Error("failed to restore stock after scheduled delivery failure",
				zap.String("product_id", sched.ProductID.String()), zap.Error(restoreErr))
		}
		return err
	}

	if err := s.schedules.Advance(ctx, sched.ID, sched.NextAfter(now)); err != nil {
		return err
	}

	system := System()
	tbl, rec := auditRef("deliveries", delivery.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorName:     system.Name,
		Action:        models.ActionDelivery,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"product":     sched.ProductName,
			"quantity":    sched.Quantity,
			"recipient":   sched.Recipient,
			"schedule_id": sched.ID.String(),
		},
	})

	if s.publisher != nil {
		event := events.Event{Type: events.EventScheduleExecuted, Payload: map[string]any{
			"schedule_id": sched.ID.String(),
			"delivery_id": delivery.ID.String(),
			"product":     sched.ProductName,
			"quantity":    sched.Quantity,
		}}
		if err := s.publisher.Publish(ctx, events.StreamInventory, event); err != nil {
			s.log.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
		}
	}
	return nil
}
