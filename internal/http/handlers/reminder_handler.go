package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
	log             *zap.Logger
}

func NewReminderHandler(reminderService *services.ReminderService, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, log: log}
}

func (h *ReminderHandler) CreateReminder(c *fiber.Ctx) error {
	var req dto.CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.RemindAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "remind_at is required"})
	}

	productID, err := parseUUIDPtr(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	reminder := &models.Reminder{
		Title:       req.Title,
		RemindAt:    req.RemindAt,
		Description: req.Description,
		ProductID:   productID,
	}

	if err := h.reminderService.Create(c.Context(), middleware.GetActor(c), reminder); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: reminder})
}

func (h *ReminderHandler) ListReminders(c *fiber.Ctx) error {
	reminders, err := h.reminderService.List(c.Context())
	if err != nil {
		h.log.Error("list reminders failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: reminders})
}

func (h *ReminderHandler) DeleteReminder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid reminder id"})
	}

	if err := h.reminderService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "reminder not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
