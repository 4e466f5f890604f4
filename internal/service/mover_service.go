package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	"github.com/fleetops/fleet-logistics-api/internal/repository"
	appErrors "github.com/fleetops/fleet-logistics-api/pkg/errors"
)

type moverRepository interface {
	Create(ctx context.Context, mover *models.Mover) error
	List(ctx context.Context) ([]models.Mover, error)
	FindByID(ctx context.Context, id string) (*models.Mover, error)
}

type loadRepository interface {
	FindRecordByID(ctx context.Context, id string) (*models.LoadRecord, error)
	CommitLoad(ctx context.Context, moverID string, totalWeight int, records []models.LoadRecord) ([]models.LoadRecord, error)
	StartMission(ctx context.Context, moverID, recordID string) error
	EndMission(ctx context.Context, moverID, recordID string) error
}

type itemCatalog interface {
	GetWeight(ctx context.Context, itemID string) (int, error)
}

// CompletionHook is invoked after a mission completes, outside the commit
// path. Used to refresh derived views such as the leaderboard cache.
type CompletionHook func(moverID string)

// CreateMoverRequest holds the payload for registering movers.
type CreateMoverRequest struct {
	MaxWeight *int `json:"max_weight" validate:"required,gt=0"`
}

// LoadItemInput is one (item, quantity) pair of a load request.
type LoadItemInput struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// LoadItemsRequest holds the payload for loading a mover. An empty items
// list is accepted: it commits no records but still performs the
// Resting -> Loading transition.
type LoadItemsRequest struct {
	MoverID string          `json:"mover_id" validate:"required"`
	Items   []LoadItemInput `json:"items" validate:"dive"`
}

// MissionRequest addresses a mission transition via a load record.
type MissionRequest struct {
	LoadRecordID string `json:"load_record_id" validate:"required"`
}

// LoadResult echoes the accepted load back to the caller.
type LoadResult struct {
	MoverID string          `json:"mover_id"`
	Items   []LoadItemInput `json:"items"`
}

// MissionResult reports the mover state after a mission transition.
type MissionResult struct {
	MoverID      string             `json:"mover_id"`
	LoadRecordID string             `json:"load_record_id"`
	Status       models.MoverStatus `json:"status"`
}

// MoverService drives the mover lifecycle: registry, loading engine and
// mission transitions.
type MoverService struct {
	movers       moverRepository
	loads        loadRepository
	catalog      itemCatalog
	validator    *validator.Validate
	logger       *zap.Logger
	queryTimeout time.Duration
	onComplete   CompletionHook
}

// NewMoverService constructs the mover service.
func NewMoverService(movers moverRepository, loads loadRepository, catalog itemCatalog, validate *validator.Validate, logger *zap.Logger, queryTimeout time.Duration) *MoverService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &MoverService{
		movers:       movers,
		loads:        loads,
		catalog:      catalog,
		validator:    validate,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// OnMissionComplete installs the completion hook.
func (s *MoverService) OnMissionComplete(hook CompletionHook) {
	s.onComplete = hook
}

// Create registers a new mover, Resting by default.
func (s *MoverService) Create(ctx context.Context, req CreateMoverRequest) (*models.Mover, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid mover payload")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	mover := &models.Mover{MaxWeight: *req.MaxWeight, Status: models.StatusResting}
	if err := s.movers.Create(ctx, mover); err != nil {
		return nil, mapStoreError(err, "failed to create mover")
	}
	s.logger.Info("mover created", zap.String("mover_id", mover.ID), zap.Int("max_weight", mover.MaxWeight))
	return mover, nil
}

// List returns all registered movers.
func (s *MoverService) List(ctx context.Context) ([]models.Mover, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	movers, err := s.movers.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "failed to list movers")
	}
	return movers, nil
}

// LoadItems validates and executes the load operation. The capacity and
// status checks are authoritative inside the repository transaction; the
// reads here only produce early, well-shaped errors.
func (s *MoverService) LoadItems(ctx context.Context, req LoadItemsRequest) (*LoadResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid load payload")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	mover, err := s.movers.FindByID(ctx, req.MoverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mover "+req.MoverID+" not found")
		}
		return nil, mapStoreError(err, "failed to load mover")
	}
	if mover.Status != models.StatusResting {
		return nil, appErrors.InvalidState(string(mover.Status), string(models.StatusResting))
	}

	totalWeight := 0
	records := make([]models.LoadRecord, 0, len(req.Items))
	for _, input := range req.Items {
		weight, err := s.catalog.GetWeight(ctx, input.ItemID)
		if err != nil {
			return nil, err
		}
		totalWeight += weight * input.Quantity
		records = append(records, models.LoadRecord{ItemID: input.ItemID, Quantity: input.Quantity})
	}

	if _, err := s.loads.CommitLoad(ctx, mover.ID, totalWeight, records); err != nil {
		return nil, s.mapLifecycleError(err, "failed to load items")
	}

	s.logger.Info("items loaded",
		zap.String("mover_id", mover.ID),
		zap.Int("records", len(records)),
		zap.Int("total_weight", totalWeight))
	return &LoadResult{MoverID: mover.ID, Items: req.Items}, nil
}

// StartMission transitions the owning mover Loading -> On-Mission.
func (s *MoverService) StartMission(ctx context.Context, req MissionRequest) (*MissionResult, error) {
	return s.mission(ctx, req, models.StatusLoading)
}

// EndMission transitions the owning mover On-Mission -> Resting and unloads
// its records.
func (s *MoverService) EndMission(ctx context.Context, req MissionRequest) (*MissionResult, error) {
	result, err := s.mission(ctx, req, models.StatusOnMission)
	if err != nil {
		return nil, err
	}
	if s.onComplete != nil {
		s.onComplete(result.MoverID)
	}
	return result, nil
}

func (s *MoverService) mission(ctx context.Context, req MissionRequest, from models.MoverStatus) (*MissionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid mission payload")
	}
	to := models.NextStatus(from)

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	record, err := s.loads.FindRecordByID(ctx, req.LoadRecordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "load record "+req.LoadRecordID+" not found")
		}
		return nil, mapStoreError(err, "failed to resolve load record")
	}

	var transition func(context.Context, string, string) error
	if to == models.StatusOnMission {
		transition = s.loads.StartMission
	} else {
		transition = s.loads.EndMission
	}
	if err := transition(ctx, record.MoverID, record.ID); err != nil {
		return nil, s.mapLifecycleError(err, "failed to transition mover")
	}

	s.logger.Info("mover transitioned",
		zap.String("mover_id", record.MoverID),
		zap.String("load_record_id", record.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return &MissionResult{MoverID: record.MoverID, LoadRecordID: record.ID, Status: to}, nil
}

func (s *MoverService) mapLifecycleError(err error, message string) error {
	var stateErr *repository.StateConflictError
	if errors.As(err, &stateErr) {
		return appErrors.InvalidState(string(stateErr.Current), string(stateErr.Required))
	}
	var capErr *repository.CapacityError
	if errors.As(err, &capErr) {
		return appErrors.Clone(appErrors.ErrCapacityExceeded, capErr.Error())
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "mover not found")
	}
	return mapStoreError(err, message)
}
