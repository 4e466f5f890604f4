package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
	"github.com/fleetops/fleet-logistics-api/pkg/export"
)

type logRepository interface {
	List(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered audit-trail export.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// AuditService exposes the append-only lifecycle audit trail.
type AuditService struct {
	repo          logRepository
	csv           csvRenderer
	pdf           pdfRenderer
	logger        *zap.Logger
	exportMaxRows int
	queryTimeout  time.Duration
}

// NewAuditService constructs the audit service.
func NewAuditService(repo logRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger, exportMaxRows int, queryTimeout time.Duration) *AuditService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exportMaxRows <= 0 {
		exportMaxRows = 10000
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &AuditService{repo: repo, csv: csv, pdf: pdf, logger: logger, exportMaxRows: exportMaxRows, queryTimeout: queryTimeout}
}

// maxListPageSize caps interactive listing pages. Exports are bounded by
// exportMaxRows instead.
const maxListPageSize = 500

// List returns audit entries matching the filter plus the total count.
func (s *AuditService) List(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error) {
	if filter.PageSize > maxListPageSize {
		filter.PageSize = maxListPageSize
	}
	return s.list(ctx, filter)
}

func (s *AuditService) list(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error) {
	if filter.Action != "" && !models.LogAction(filter.Action).Valid() {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "unknown log action "+filter.Action)
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapStoreError(err, "failed to list audit log")
	}
	return entries, total, nil
}

// Export renders the audit trail matching the filter as CSV or PDF.
func (s *AuditService) Export(ctx context.Context, format string, filter models.LogFilter) (*ExportFile, error) {
	filter.Page = 1
	filter.PageSize = s.exportMaxRows
	entries, _, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"id", "load_record_id", "action", "timestamp"},
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id":             entry.ID,
			"load_record_id": entry.LoadRecordID,
			"action":         string(entry.Action),
			"timestamp":      entry.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	switch format {
	case "csv", "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: "audit-log.csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Lifecycle Audit Log")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: "audit-log.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
}
