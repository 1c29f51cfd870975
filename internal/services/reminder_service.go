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

var ErrReminderTitleRequired = errors.New("reminder title is required")

type ReminderService struct {
	reminders *repositories.ReminderRepo
	audit     *AuditService
	publisher events.Publisher
	log       *zap.Logger
}

func NewReminderService(reminders *repositories.ReminderRepo, audit *AuditService, publisher events.Publisher, log *zap.Logger) *ReminderService {
	return &ReminderService{reminders: reminders, audit: audit, publisher: publisher, log: log}
}

func (s *ReminderService) Create(ctx context.Context, actor Actor, m *models.Reminder) error {
	if m.Title == "" {
		return ErrReminderTitleRequired
	}

	if err := s.reminders.Create(ctx, m); err != nil {
		return err
	}

	tbl, rec := auditRef("reminders", m.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionCreation,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"title":     m.Title,
			"remind_at": m.RemindAt.Format(time.RFC3339),
		},
	})
	return nil
}

func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	return s.reminders.List(ctx)
}

func (s *ReminderService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reminders.Delete(ctx, id); err != nil {
		return err
	}

	tbl, rec := auditRef("reminders", id.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDeletion,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"title": existing.Title},
	})
	return nil
}

// DispatchDue publishes an event for every reminder that has come due and
// marks it notified so it fires exactly once.
func (s *ReminderService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.reminders.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, m := range due {
		if s.publisher != nil {
			event := events.Event{Type: events.EventReminderDue, Payload: map[string]any{
				"reminder_id": m.ID.String(),
				"title":       m.Title,
				"remind_at":   m.RemindAt.Format(time.RFC3339),
			}}
			if err := s.publisher.Publish(ctx, events.StreamInventory, event); err != nil {
				s.log.Warn("failed to publish reminder", zap.String("reminder_id", m.ID.String()), zap.Error(err))
				continue
			}
		}
		if err := s.reminders.MarkNotified(ctx, m.ID, now); err != nil {
			s.log.Error("failed to mark reminder notified", zap.String("reminder_id", m.ID.String()), zap.Error(err))
			continue
		}
		dispatched++
	}
	return dispatched, nil
}
