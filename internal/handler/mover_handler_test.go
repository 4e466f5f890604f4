package handler

import (
	"bytes"
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

type moverServiceMock struct {
	createResp  *models.Mover
	createErr   error
	listResp    []models.Mover
	listErr     error
	loadResp    *service.LoadResult
	loadErr     error
	missionResp *service.MissionResult
	missionErr  error
	lastLoad    service.LoadItemsRequest
	loadCalled  bool
	startCalled bool
	endCalled   bool
}

func (m *moverServiceMock) Create(ctx context.Context, req service.CreateMoverRequest) (*models.Mover, error) {
	return m.createResp, m.createErr
}

func (m *moverServiceMock) List(ctx context.Context) ([]models.Mover, error) {
	return m.listResp, m.listErr
}

func (m *moverServiceMock) LoadItems(ctx context.Context, req service.LoadItemsRequest) (*service.LoadResult, error) {
	m.loadCalled = true
	m.lastLoad = req
	return m.loadResp, m.loadErr
}

func (m *moverServiceMock) StartMission(ctx context.Context, req service.MissionRequest) (*service.MissionResult, error) {
	m.startCalled = true
	return m.missionResp, m.missionErr
}

func (m *moverServiceMock) EndMission(ctx context.Context, req service.MissionRequest) (*service.MissionResult, error) {
	m.endCalled = true
	return m.missionResp, m.missionErr
}

type leaderboardMock struct {
	ranking []models.MoverMissionCount
	err     error
	called  bool
}

func (m *leaderboardMock) CompletedMissions(ctx context.Context) ([]models.MoverMissionCount, error) {
	m.called = true
	return m.ranking, m.err
}

func postJSON(c *gin.Context, method, path, body string) {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}

func TestMoverHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &moverServiceMock{createResp: &models.Mover{ID: "m1", MaxWeight: 500, Status: models.StatusResting}}
	handler := NewMoverHandler(mockSvc, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPost, "/movers", `{"max_weight":500}`)

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Mover created successfully", decodeEnvelope(t, w).Message)
}

func TestMoverHandlerLoadItems(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &moverServiceMock{loadResp: &service.LoadResult{MoverID: "m1"}}
	handler := NewMoverHandler(mockSvc, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPost, "/movers/load-items",
		`{"mover_id":"m1","items":[{"item_id":"i1","quantity":2}]}`)

	handler.LoadItems(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.loadCalled)
	assert.Equal(t, "m1", mockSvc.lastLoad.MoverID)
	require.Len(t, mockSvc.lastLoad.Items, 1)
	assert.Equal(t, 2, mockSvc.lastLoad.Items[0].Quantity)
}

func TestMoverHandlerLoadItemsCapacityExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &moverServiceMock{loadErr: appErrors.Clone(appErrors.ErrCapacityExceeded, "load of 40 onto current 90 exceeds capacity 100")}
	handler := NewMoverHandler(mockSvc, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPost, "/movers/load-items",
		`{"mover_id":"m1","items":[{"item_id":"i1","quantity":2}]}`)

	handler.LoadItems(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, envelope.Code)
}

func TestMoverHandlerStartMission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &moverServiceMock{missionResp: &service.MissionResult{MoverID: "m1", LoadRecordID: "r1", Status: models.StatusOnMission}}
	handler := NewMoverHandler(mockSvc, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPut, "/movers/start-mission", `{"load_record_id":"r1"}`)

	handler.StartMission(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.startCalled)
	assert.Equal(t, "Mission started successfully", decodeEnvelope(t, w).Message)
}

func TestMoverHandlerEndMissionInvalidState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &moverServiceMock{missionErr: appErrors.InvalidState(string(models.StatusResting), string(models.StatusOnMission))}
	handler := NewMoverHandler(mockSvc, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPut, "/movers/end-mission", `{"load_record_id":"r1"}`)

	handler.EndMission(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, mockSvc.endCalled)
	assert.Equal(t, appErrors.ErrInvalidState.Code, decodeEnvelope(t, w).Code)
}

func TestMoverHandlerMissionInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMoverHandler(&moverServiceMock{}, &leaderboardMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, http.MethodPut, "/movers/start-mission", `{"load_record_id":`)

	handler.StartMission(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoverHandlerMissionCompletion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	board := &leaderboardMock{ranking: []models.MoverMissionCount{
		{MoverID: "m2", MissionCount: 5},
		{MoverID: "m1", MissionCount: 2},
	}}
	handler := NewMoverHandler(&moverServiceMock{}, board)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/movers/mission-completion", nil)
	c.Request = req

	handler.MissionCompletion(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, board.called)
	assert.Equal(t, "Movers by completed missions", decodeEnvelope(t, w).Message)
}
