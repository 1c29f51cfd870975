package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/http/handlers"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/models"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
	deliveryHandler *handlers.DeliveryHandler,
	scheduleHandler *handlers.ScheduleHandler,
	reminderHandler *handlers.ReminderHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	auditHandler *handlers.AuditHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", authHandler.GetMe)

	// Products. Fixed paths are registered before /products/:id so they are
	// not swallowed by the id parameter.
	protected.Post("/products", productHandler.CreateProduct)
	protected.Get("/products", productHandler.ListProducts)
	protected.Get("/products/low-stock", productHandler.LowStock)
	protected.Get("/products/expiring", productHandler.Expiring)
	protected.Get("/products/history", productHandler.History)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Deliveries
	protected.Post("/deliveries", deliveryHandler.CreateDelivery)
	protected.Get("/deliveries", deliveryHandler.ListDeliveries)
	protected.Get("/deliveries/:id", deliveryHandler.GetDelivery)
	protected.Put("/deliveries/:id", deliveryHandler.UpdateDelivery)
	protected.Delete("/deliveries/:id", deliveryHandler.DeleteDelivery)

	// Delivery schedules
	protected.Post("/schedules", scheduleHandler.CreateSchedule)
	protected.Get("/schedules", scheduleHandler.ListSchedules)
	protected.Delete("/schedules/:id", scheduleHandler.DeleteSchedule)

	// Reminders
	protected.Post("/reminders", reminderHandler.CreateReminder)
	protected.Get("/reminders", reminderHandler.ListReminders)
	protected.Delete("/reminders/:id", reminderHandler.DeleteReminder)

	// Reports
	protected.Post("/reports/generate", reportHandler.GenerateReport)
	protected.Get("/reports", reportHandler.ListReports)
	protected.Get("/reports/:name/download", reportHandler.DownloadReport)

	// Superadmin surface
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleSuperadmin))
	admin.Post("/units", adminHandler.CreateUnit)
	admin.Get("/units", adminHandler.ListUnits)
	admin.Delete("/units/:id", adminHandler.DeleteUnit)
	admin.Post("/warehouses", adminHandler.CreateWarehouse)
	admin.Get("/warehouses", adminHandler.ListWarehouses)
	admin.Delete("/warehouses/:id", adminHandler.DeleteWarehouse)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/audit-logs", auditHandler.ListAuditLogs)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
