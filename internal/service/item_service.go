package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
)

type itemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	List(ctx context.Context) ([]models.Item, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)
}

// CreateItemRequest holds the payload for creating catalog items. Weight is
// a pointer so that an explicit zero survives the required check.
type CreateItemRequest struct {
	Name   string `json:"name" validate:"required"`
	Weight *int   `json:"weight" validate:"required,gte=0"`
}

// ItemService handles cargo catalog use-cases.
type ItemService struct {
	repo         itemRepository
	validator    *validator.Validate
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewItemService constructs the item service.
func NewItemService(repo itemRepository, validate *validator.Validate, logger *zap.Logger, queryTimeout time.Duration) *ItemService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &ItemService{repo: repo, validator: validate, logger: logger, queryTimeout: queryTimeout}
}

// Create registers a new catalog item with a canonicalised name.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*models.Item, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid item payload")
	}
	name := CanonicalName(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "item name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	item := &models.Item{Name: name, Weight: *req.Weight}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, mapStoreError(err, "failed to create item")
	}
	s.logger.Info("item created", zap.String("item_id", item.ID), zap.Int("weight", item.Weight))
	return item, nil
}

// List returns all catalog items.
func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "failed to list items")
	}
	return items, nil
}

// GetWeight resolves an item's weight by ID.
func (s *ItemService) GetWeight(ctx context.Context, itemID string) (int, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "item "+itemID+" not found")
		}
		return 0, mapStoreError(err, "failed to load item")
	}
	return item.Weight, nil
}

// CanonicalName trims the name, collapses inner whitespace runs and lowers
// the case, so equal cargo names always store identically.
func CanonicalName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
