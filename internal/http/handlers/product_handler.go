package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *services.ProductService
	cfg            *config.Config
	log            *zap.Logger
}

func NewProductHandler(productService *services.ProductService, cfg *config.Config, log *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, cfg: cfg, log: log}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	warehouseID, err := parseUUIDPtr(req.WarehouseID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid warehouse id"})
	}

	product := &models.Product{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Supplier:    req.Supplier,
		ExpiresAt:   req.ExpiresAt,
		WarehouseID: warehouseID,
	}

	if err := h.productService.Create(c.Context(), middleware.GetActor(c), product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: product})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	product, err := h.productService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "product not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: product})
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.List(c.Context())
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: products})
}

func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.cfg.LowStockThreshold)
	products, err := h.productService.LowStock(c.Context(), threshold)
	if err != nil {
		h.log.Error("low stock query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: products})
}

func (h *ProductHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.cfg.ExpiryWindowDays)
	products, err := h.productService.Expiring(c.Context(), days)
	if err != nil {
		h.log.Error("expiring query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: products})
}

func (h *ProductHandler) History(c *fiber.Ctx) error {
	history, err := h.productService.History(c.Context())
	if err != nil {
		h.log.Error("product history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: history})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	warehouseID, err := parseUUIDPtr(req.WarehouseID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid warehouse id"})
	}

	product := &models.Product{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Supplier:    req.Supplier,
		ExpiresAt:   req.ExpiresAt,
		WarehouseID: warehouseID,
	}

	updated, err := h.productService.Update(c.Context(), middleware.GetActor(c), id, product)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid product id"})
	}

	if err := h.productService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "product not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// parseUUIDPtr parses an optional uuid string from a request body.
func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
