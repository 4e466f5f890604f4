package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/fleet-logistics-api/internal/models"
	"github.com/fleetops/fleet-logistics-api/internal/repository"
)

const leaderboardCacheKey = "leaderboard:completed-missions"

type leaderboardRepository interface {
	CompletedMissions(ctx context.Context) ([]models.MoverMissionCount, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LeaderboardService serves the completed-missions ranking. The ranking is
// an eventually-consistent snapshot: reads may be served from a short-lived
// cache, and a mission completing mid-query may or may not be reflected.
type LeaderboardService struct {
	repo         leaderboardRepository
	cache        snapshotCache
	metrics      *MetricsService
	logger       *zap.Logger
	cacheTTL     time.Duration
	cacheEnabled bool
	queryTimeout time.Duration
}

// NewLeaderboardService constructs the leaderboard service.
func NewLeaderboardService(repo leaderboardRepository, cache snapshotCache, metrics *MetricsService, logger *zap.Logger, cacheTTL, queryTimeout time.Duration, cacheEnabled bool) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &LeaderboardService{
		repo:         repo,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		cacheTTL:     cacheTTL,
		cacheEnabled: cacheEnabled && cache != nil,
		queryTimeout: queryTimeout,
	}
}

// CompletedMissions returns movers ranked by completed-mission count,
// descending, mover ID ascending on ties. Movers without completed missions
// are excluded.
func (s *LeaderboardService) CompletedMissions(ctx context.Context) ([]models.MoverMissionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if s.cacheEnabled {
		var cached []models.MoverMissionCount
		err := s.cache.Get(ctx, leaderboardCacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheLookup(true)
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn("leaderboard cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
	}

	ranking, err := s.query(ctx)
	if err != nil {
		return nil, mapStoreError(err, "failed to aggregate completed missions")
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, leaderboardCacheKey, ranking, s.cacheTTL); err != nil {
			s.logger.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return ranking, nil
}

// Refresh recomputes the ranking and replaces the cached snapshot. Used by
// the background re-warm worker after missions complete.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	ranking, err := s.query(ctx)
	if err != nil {
		return err
	}
	if !s.cacheEnabled {
		return nil
	}
	return s.cache.Set(ctx, leaderboardCacheKey, ranking, s.cacheTTL)
}

// Invalidate drops the cached snapshot so the next read recomputes it.
func (s *LeaderboardService) Invalidate(ctx context.Context) error {
	if !s.cacheEnabled {
		return nil
	}
	return s.cache.Delete(ctx, leaderboardCacheKey)
}

func (s *LeaderboardService) query(ctx context.Context) ([]models.MoverMissionCount, error) {
	start := time.Now()
	ranking, err := s.repo.CompletedMissions(ctx)
	s.metrics.ObserveDBQuery("completed_missions", time.Since(start))
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
