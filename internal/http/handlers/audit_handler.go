package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditService *services.AuditService
	log          *zap.Logger
}

func NewAuditHandler(auditService *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, log: log}
}

// ListAuditLogs reads the audit trail, newest first. Supported query
// parameters: actor (substring match), action (exact), from and to
// (RFC 3339 timestamps), all combinable.
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	filter := repositories.AuditFilter{
		ActorNameContains: c.Query("actor"),
		Action:            c.Query("action"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid from timestamp"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid to timestamp"})
		}
		filter.To = &t
	}

	records, err := h.auditService.Query(c.Context(), filter)
	if err != nil {
		var malformed *services.MalformedDetailsError
		if errors.As(err, &malformed) {
			h.log.Error("audit trail contains malformed details",
				zap.Int64("record_id", malformed.RecordID), zap.Error(malformed.Err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "audit trail is corrupted"})
		}
		h.log.Error("audit query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: records})
}
