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

type itemService interface {
	Create(ctx context.Context, req service.CreateItemRequest) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
}

// ItemHandler exposes cargo catalog endpoints.
type ItemHandler struct {
	items itemService
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(items itemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// Create godoc
// @Summary Create a cargo item
// @Tags Items
// @Accept json
// @Produce json
// @Param payload body service.CreateItemRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created successfully", item)
}

// List godoc
// @Summary List cargo items
// @Tags Items
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fetched all items", items)
}
