package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type DeliveryHandler struct {
	deliveryService *services.DeliveryService
	log             *zap.Logger
}

func NewDeliveryHandler(deliveryService *services.DeliveryService, log *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService, log: log}
}

func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var req dto.CreateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	delivery := &models.Delivery{
		ProductID: productID,
		Quantity:  req.Quantity,
		Recipient: req.Recipient,
	}

	if err := h.deliveryService.Create(c.Context(), middleware.GetActor(c), delivery); err != nil {
		switch {
		case repositories.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "product not found"})
		case errors.Is(err, repositories.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "insufficient stock"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: delivery})
}

func (h *DeliveryHandler) GetDelivery(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid delivery id"})
	}

	delivery, err := h.deliveryService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "delivery not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: delivery})
}

func (h *DeliveryHandler) ListDeliveries(c *fiber.Ctx) error {
	deliveries, err := h.deliveryService.List(c.Context())
	if err != nil {
		h.log.Error("list deliveries failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: deliveries})
}

func (h *DeliveryHandler) UpdateDelivery(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid delivery id"})
	}

	var req dto.UpdateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	delivery := &models.Delivery{
		ProductID: productID,
		Quantity:  req.Quantity,
		Recipient: req.Recipient,
	}

	updated, err := h.deliveryService.Update(c.Context(), middleware.GetActor(c), id, delivery)
	if err != nil {
		switch {
		case repositories.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "delivery not found"})
		case errors.Is(err, repositories.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "insufficient stock"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *DeliveryHandler) DeleteDelivery(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid delivery id"})
	}

	if err := h.deliveryService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "delivery not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
