package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	"github.com/fleetops/fleet-logistics-api/internal/service"
	"github.com/fleetops/fleet-logistics-api/pkg/response"
)

type auditService interface {
	List(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error)
	Export(ctx context.Context, format string, filter models.LogFilter) (*service.ExportFile, error)
}

// AuditHandler exposes the lifecycle audit trail.
type AuditHandler struct {
	audit    auditService
	pageSize int
}

// NewAuditHandler constructs AuditHandler. pageSize is the default page
// size served when the request carries no limit parameter.
func NewAuditHandler(audit auditService, pageSize int) *AuditHandler {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &AuditHandler{audit: audit, pageSize: pageSize}
}

func (h *AuditHandler) logFilterFromQuery(c *gin.Context) models.LogFilter {
	var filter models.LogFilter
	filter.Action = c.Query("action")
	filter.LoadRecordID = c.Query("load_record_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.pageSize))); err == nil {
		filter.PageSize = size
	}
	return filter
}

// List godoc
// @Summary List audit log entries
// @Tags Audit
// @Produce json
// @Param action query string false "Filter by action (Loaded, On-Mission, Unloaded)"
// @Param load_record_id query string false "Filter by load record"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	filter := h.logFilterFromQuery(c)
	entries, total, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fetched audit log", gin.H{"entries": entries, "total": total})
}

// Export godoc
// @Summary Export the audit log
// @Tags Audit
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Param action query string false "Filter by action"
// @Param load_record_id query string false "Filter by load record"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /logs/export [get]
func (h *AuditHandler) Export(c *gin.Context) {
	filter := h.logFilterFromQuery(c)
	file, err := h.audit.Export(c.Request.Context(), c.DefaultQuery("format", "csv"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Content)
}
