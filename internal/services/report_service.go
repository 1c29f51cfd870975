package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/models"
	"github.com/stockward/backend/internal/reports"
	"github.com/stockward/backend/internal/repositories"
	"go.uber.org/zap"
)

var ErrInvalidReportKind = errors.New("report kind must be inventory, deliveries or expiry")

// ReportService generates CSV reports on disk and keeps a catalog row per
// generated file. Generation and downloads both land in the audit trail.
type ReportService struct {
	reports    *repositories.ReportRepo
	products   *repositories.ProductRepo
	deliveries *repositories.DeliveryRepo
	audit      *AuditService
	cfg        *config.Config
	log        *zap.Logger
}

func NewReportService(
	reportRepo *repositories.ReportRepo,
	products *repositories.ProductRepo,
	deliveries *repositories.DeliveryRepo,
	audit *AuditService,
	cfg *config.Config,
	log *zap.Logger,
) *ReportService {
	return &ReportService{
		reports:    reportRepo,
		products:   products,
		deliveries: deliveries,
		audit:      audit,
		cfg:        cfg,
		log:        log,
	}
}

// Generate renders a report of the given kind covering [from, to], writes it
// under the configured reports directory and catalogs it. The audit record is
// only written once the file and the catalog row both exist.
func (s *ReportService) Generate(ctx context.Context, actor Actor, kind string, from, to time.Time) (*models.Report, error) {
	if !models.IsValidReportKind(kind) {
		return nil, ErrInvalidReportKind
	}

	var table reports.Table
	switch kind {
	case models.ReportInventory:
		products, err := s.products.List(ctx)
		if err != nil {
			return nil, err
		}
		table = reports.Inventory(products)
	case models.ReportDeliveries:
		deliveries, err := s.deliveries.ListBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		table = reports.Deliveries(deliveries)
	case models.ReportExpiry:
		products, err := s.products.Expiring(ctx, s.cfg.ExpiryWindowDays)
		if err != nil {
			return nil, err
		}
		table = reports.Expiry(products)
	}

	if err := os.MkdirAll(s.cfg.ReportsDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("report_%s_%d.csv", kind, time.Now().UnixMilli())
	path := filepath.Join(s.cfg.ReportsDir, name)
	if err := reports.WriteCSV(path, table); err != nil {
		return nil, err
	}

	rep := &models.Report{
		Name:        name,
		Kind:        kind,
		Format:      "csv",
		FilePath:    path,
		PeriodStart: from,
		PeriodEnd:   to,
		GeneratedBy: actor.Name,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.log.Warn("failed to remove orphaned report file", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}

	tbl, rec := auditRef("reports", rep.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionGeneration,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details: map[string]any{
			"kind":         kind,
			"format":       "csv",
			"file":         name,
			"period_start": from.Format(time.RFC3339),
			"period_end":   to.Format(time.RFC3339),
		},
	})
	return rep, nil
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	return s.reports.List(ctx)
}

// Resolve looks a generated report up by file name for download and records
// the download in the audit trail. The name is matched against the catalog,
// never used as a path, so a crafted name cannot escape the reports
// directory.
func (s *ReportService) Resolve(ctx context.Context, actor Actor, name string) (*models.Report, error) {
	rep, err := s.reports.GetByName(ctx, filepath.Base(name))
	if err != nil {
		return nil, err
	}

	tbl, rec := auditRef("reports", rep.ID.String())
	_ = s.audit.Record(ctx, models.AuditEntry{
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		Action:        models.ActionDownload,
		AffectedTable: tbl,
		AffectedID:    rec,
		Details:       map[string]any{"file": rep.Name, "kind": rep.Kind},
	})
	return rep, nil
}
