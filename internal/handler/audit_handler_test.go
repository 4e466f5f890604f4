package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	"github.com/fleetops/fleet-logistics-api/internal/service"
	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
)

type auditServiceMock struct {
	entries    []models.LogEntry
	total      int
	listErr    error
	file       *service.ExportFile
	exportErr  error
	lastFilter models.LogFilter
	lastFormat string
}

func (m *auditServiceMock) List(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error) {
	m.lastFilter = filter
	return m.entries, m.total, m.listErr
}

func (m *auditServiceMock) Export(ctx context.Context, format string, filter models.LogFilter) (*service.ExportFile, error) {
	m.lastFormat = format
	m.lastFilter = filter
	return m.file, m.exportErr
}

func TestAuditHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &auditServiceMock{entries: []models.LogEntry{{ID: "l1", Action: models.LogLoaded}}, total: 1}
	handler := NewAuditHandler(mockSvc, 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/logs?action=Loaded&load_record_id=r1&page=2&limit=25", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Loaded", mockSvc.lastFilter.Action)
	assert.Equal(t, "r1", mockSvc.lastFilter.LoadRecordID)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 25, mockSvc.lastFilter.PageSize)
}

func TestAuditHandlerListDefaultsToConfiguredPageSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &auditServiceMock{}
	handler := NewAuditHandler(mockSvc, 25)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/logs", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, mockSvc.lastFilter.PageSize)
	assert.Equal(t, 1, mockSvc.lastFilter.Page)
}

func TestAuditHandlerListUnknownAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &auditServiceMock{listErr: appErrors.Clone(appErrors.ErrValidation, "unknown log action Teleported")}
	handler := NewAuditHandler(mockSvc, 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/logs?action=Teleported", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, w).Code)
}

func TestAuditHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &auditServiceMock{file: &service.ExportFile{
		Content:     []byte("id,load_record_id,action,timestamp\n"),
		ContentType: "text/csv",
		Filename:    "audit-log.csv",
	}}
	handler := NewAuditHandler(mockSvc, 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/logs/export", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mockSvc.lastFormat)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "audit-log.csv")
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestAuditHandlerExportUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &auditServiceMock{exportErr: appErrors.Clone(appErrors.ErrValidation, "unsupported export format xlsx")}
	handler := NewAuditHandler(mockSvc, 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/logs/export?format=xlsx", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "xlsx", mockSvc.lastFormat)
}
