package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	"github.com/fleetops/fleet-logistics-api/internal/service"
	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
	"github.com/fleetops/fleet-logistics-api/pkg/response"
)

type moverService interface {
	Create(ctx context.Context, req service.CreateMoverRequest) (*models.Mover, error)
	List(ctx context.Context) ([]models.Mover, error)
	LoadItems(ctx context.Context, req service.LoadItemsRequest) (*service.LoadResult, error)
	StartMission(ctx context.Context, req service.MissionRequest) (*service.MissionResult, error)
	EndMission(ctx context.Context, req service.MissionRequest) (*service.MissionResult, error)
}

type missionLeaderboard interface {
	CompletedMissions(ctx context.Context) ([]models.MoverMissionCount, error)
}

// MoverHandler exposes mover registry, loading and mission endpoints.
type MoverHandler struct {
	movers      moverService
	leaderboard missionLeaderboard
}

// NewMoverHandler constructs MoverHandler.
func NewMoverHandler(movers moverService, leaderboard missionLeaderboard) *MoverHandler {
	return &MoverHandler{movers: movers, leaderboard: leaderboard}
}

// Create godoc
// @Summary Register a mover
// @Tags Movers
// @Accept json
// @Produce json
// @Param payload body service.CreateMoverRequest true "Mover payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /movers [post]
func (h *MoverHandler) Create(c *gin.Context) {
	var req service.CreateMoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mover, err := h.movers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Mover created successfully", mover)
}

// List godoc
// @Summary List movers
// @Tags Movers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /movers [get]
func (h *MoverHandler) List(c *gin.Context) {
	movers, err := h.movers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fetched all movers", movers)
}

// LoadItems godoc
// @Summary Load items onto a mover
// @Description Validates the mover status and capacity, creates load records with audit entries, and transitions the mover to Loading.
// @Tags Movers
// @Accept json
// @Produce json
// @Param payload body service.LoadItemsRequest true "Load payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /movers/load-items [post]
func (h *MoverHandler) LoadItems(c *gin.Context) {
	var req service.LoadItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.movers.LoadItems(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Items loaded successfully", result)
}

// StartMission godoc
// @Summary Start a mission
// @Tags Movers
// @Accept json
// @Produce json
// @Param payload body service.MissionRequest true "Mission payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /movers/start-mission [put]
func (h *MoverHandler) StartMission(c *gin.Context) {
	var req service.MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.movers.StartMission(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Mission started successfully", result)
}

// EndMission godoc
// @Summary End a mission
// @Description Transitions the mover back to Resting, unloads its records and appends audit entries.
// @Tags Movers
// @Accept json
// @Produce json
// @Param payload body service.MissionRequest true "Mission payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /movers/end-mission [put]
func (h *MoverHandler) EndMission(c *gin.Context) {
	var req service.MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.movers.EndMission(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Mission ended successfully", result)
}

// MissionCompletion godoc
// @Summary Movers ranked by completed missions
// @Tags Movers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /movers/mission-completion [get]
func (h *MoverHandler) MissionCompletion(c *gin.Context) {
	ranking, err := h.leaderboard.CompletedMissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Movers by completed missions", ranking)
}
