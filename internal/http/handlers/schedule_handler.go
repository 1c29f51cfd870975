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

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	log             *zap.Logger
}

func NewScheduleHandler(scheduleService *services.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, log: log}
}

func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}
	if req.NextDeliveryAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "next_delivery_at is required"})
	}

	schedule := &models.Schedule{
		ProductID:      productID,
		Quantity:       req.Quantity,
		Recipient:      req.Recipient,
		Frequency:      req.Frequency,
		NextDeliveryAt: req.NextDeliveryAt,
		Description:    req.Description,
	}

	if err := h.scheduleService.Create(c.Context(), middleware.GetActor(c), schedule); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: schedule})
}

func (h *ScheduleHandler) ListSchedules(c *fiber.Ctx) error {
	schedules, err := h.scheduleService.List(c.Context())
	if err != nil {
		h.log.Error("list schedules failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: schedules})
}

func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid schedule id"})
	}

	if err := h.scheduleService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "schedule not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
