package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewAuthHandler(userService *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "email and password are required"})
	}

	user, token, err := h.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid email or password"})
		}
		h.log.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.userService.Logout(c.Context(), middleware.GetActor(c))
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}
