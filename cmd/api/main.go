package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/db"
	"github.com/stockward/backend/internal/events"
	apphttp "github.com/stockward/backend/internal/http"
	"github.com/stockward/backend/internal/http/handlers"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	auditRepo := repositories.NewAuditRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	deliveryRepo := repositories.NewDeliveryRepo(pool)
	scheduleRepo := repositories.NewScheduleRepo(pool)
	reminderRepo := repositories.NewReminderRepo(pool)
	unitRepo := repositories.NewUnitRepo(pool)
	warehouseRepo := repositories.NewWarehouseRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	reportRepo := repositories.NewReportRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	auditService := services.NewAuditService(auditRepo, log)
	productService := services.NewProductService(productRepo, auditService, log)
	deliveryService := services.NewDeliveryService(deliveryRepo, productRepo, auditService, publisher, log)
	scheduleService := services.NewScheduleService(scheduleRepo, productRepo, deliveryRepo, auditService, publisher, log)
	reminderService := services.NewReminderService(reminderRepo, auditService, publisher, log)
	orgService := services.NewOrgService(unitRepo, warehouseRepo, auditService, log)
	userService := services.NewUserService(userRepo, auditService, cfg, log)
	reportService := services.NewReportService(reportRepo, productRepo, deliveryRepo, auditService, cfg, log)

	if err := userService.EnsureBootstrapAdmin(ctx); err != nil {
		log.Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	productHandler := handlers.NewProductHandler(productService, cfg, log)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService, log)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, log)
	reminderHandler := handlers.NewReminderHandler(reminderService, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	adminHandler := handlers.NewAdminHandler(orgService, userService, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, productHandler, deliveryHandler, scheduleHandler,
		reminderHandler, reportHandler, adminHandler, auditHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
