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

// AdminHandler covers the superadmin surface: units, warehouses and user
// accounts.
type AdminHandler struct {
	orgService  *services.OrgService
	userService *services.UserService
	log         *zap.Logger
}

func NewAdminHandler(orgService *services.OrgService, userService *services.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{orgService: orgService, userService: userService, log: log}
}

// Units

func (h *AdminHandler) CreateUnit(c *fiber.Ctx) error {
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	unit := &models.Unit{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.orgService.CreateUnit(c.Context(), middleware.GetActor(c), unit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: unit})
}

func (h *AdminHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.orgService.ListUnits(c.Context())
	if err != nil {
		h.log.Error("list units failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: units})
}

func (h *AdminHandler) DeleteUnit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid unit id"})
	}

	if err := h.orgService.DeleteUnit(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "unit not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Warehouses

func (h *AdminHandler) CreateWarehouse(c *fiber.Ctx) error {
	var req dto.CreateWarehouseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	unitID, err := parseUUIDPtr(req.UnitID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid unit id"})
	}

	warehouse := &models.Warehouse{
		UnitID:   unitID,
		Name:     req.Name,
		Location: req.Location,
	}

	if err := h.orgService.CreateWarehouse(c.Context(), middleware.GetActor(c), warehouse); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: warehouse})
}

func (h *AdminHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.orgService.ListWarehouses(c.Context())
	if err != nil {
		h.log.Error("list warehouses failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: warehouses})
}

func (h *AdminHandler) DeleteWarehouse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid warehouse id"})
	}

	if err := h.orgService.DeleteWarehouse(c.Context(), middleware.GetActor(c), id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "warehouse not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Users

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	unitID, err := parseUUIDPtr(req.UnitID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid unit id"})
	}

	user := &models.User{
		Email:  req.Email,
		Name:   req.Name,
		Role:   req.Role,
		UnitID: unitID,
	}

	if err := h.userService.Create(c.Context(), middleware.GetActor(c), user, req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: users})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	if err := h.userService.Delete(c.Context(), middleware.GetActor(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
		case repositories.IsNotFound(err):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
