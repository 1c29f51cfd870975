package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockward/backend/internal/http/dto"
	"github.com/stockward/backend/internal/middleware"
	"github.com/stockward/backend/internal/repositories"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *services.ReportService
	log           *zap.Logger
}

func NewReportHandler(reportService *services.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, log: log}
}

func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	// Default period: the last 30 days.
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}

	report, err := h.reportService.Generate(c.Context(), middleware.GetActor(c), req.Kind, from, to)
	if err != nil {
		if err == services.ErrInvalidReportKind {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("report generation failed", zap.String("kind", req.Kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: report})
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reportService.List(c.Context())
	if err != nil {
		h.log.Error("list reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: reports})
}

func (h *ReportHandler) DownloadReport(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "report name is required"})
	}

	report, err := h.reportService.Resolve(c.Context(), middleware.GetActor(c), name)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "report not found"})
		}
		h.log.Error("report download failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Download(report.FilePath, report.Name)
}
