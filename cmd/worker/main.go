package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/db"
	"github.com/stockward/backend/internal/events"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	auditRepo := repositories.NewAuditRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	deliveryRepo := repositories.NewDeliveryRepo(pool)
	scheduleRepo := repositories.NewScheduleRepo(pool)
	reminderRepo := repositories.NewReminderRepo(pool)

	// Services
	publisher := events.NewRedisPublisher(rdb, log)
	auditService := services.NewAuditService(auditRepo, log)
	scheduleService := services.NewScheduleService(scheduleRepo, productRepo, deliveryRepo, auditService, publisher, log)
	reminderService := services.NewReminderService(reminderRepo, auditService, publisher, log)

	// Cron jobs
	c := cron.New()
	if _, err := c.AddFunc(cfg.ScheduleCron, func() {
		runDueSchedules(ctx, scheduleService, log)
	}); err != nil {
		log.Fatal("invalid schedule cron spec", zap.String("spec", cfg.ScheduleCron), zap.Error(err))
	}
	if _, err := c.AddFunc(cfg.ReminderCron, func() {
		dispatchDueReminders(ctx, reminderService, log)
	}); err != nil {
		log.Fatal("invalid reminder cron spec", zap.String("spec", cfg.ReminderCron), zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	log.Info("worker started",
		zap.String("schedule_cron", cfg.ScheduleCron),
		zap.String("reminder_cron", cfg.ReminderCron),
		zap.Duration("low_stock_scan", cfg.LowStockScan))

	lowStockTicker := time.NewTicker(cfg.LowStockScan)
	defer lowStockTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-lowStockTicker.C:
			scanLowStock(ctx, productRepo, publisher, cfg, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runDueSchedules(ctx context.Context, scheduleService *services.ScheduleService, log *zap.Logger) {
	executed, err := scheduleService.RunDue(ctx, time.Now())
	if err != nil {
		log.Error("failed to run due schedules", zap.Error(err))
		return
	}
	if executed > 0 {
		log.Info("executed due schedules", zap.Int("count", executed))
	}
}

func dispatchDueReminders(ctx context.Context, reminderService *services.ReminderService, log *zap.Logger) {
	dispatched, err := reminderService.DispatchDue(ctx, time.Now())
	if err != nil {
		log.Error("failed to dispatch reminders", zap.Error(err))
		return
	}
	if dispatched > 0 {
		log.Info("dispatched reminders", zap.Int("count", dispatched))
	}
}

func scanLowStock(ctx context.Context, productRepo *repositories.ProductRepo, publisher events.Publisher, cfg *config.Config, log *zap.Logger) {
	products, err := productRepo.LowStock(ctx, cfg.LowStockThreshold)
	if err != nil {
		log.Error("low stock scan failed", zap.Error(err))
		return
	}

	for _, p := range products {
		event := events.Event{Type: events.EventLowStock, Payload: map[string]any{
			"product_id": p.ID.String(),
			"name":       p.Name,
			"quantity":   p.Quantity,
			"threshold":  cfg.LowStockThreshold,
		}}
		if err := publisher.Publish(ctx, events.StreamInventory, event); err != nil {
			log.Warn("failed to publish low stock event", zap.String("product", p.Name), zap.Error(err))
		}
	}
}
