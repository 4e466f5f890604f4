package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/fleetops/fleet-logistics-api/api/swagger"
	"github.com/fleetops/fleet-logistics-api/internal/handler"
	"github.com/fleetops/fleet-logistics-api/internal/middleware"
	"github.com/fleetops/fleet-logistics-api/internal/repository"
	"github.com/fleetops/fleet-logistics-api/internal/service"
	"github.com/fleetops/fleet-logistics-api/pkg/cache"
	"github.com/fleetops/fleet-logistics-api/pkg/config"
	"github.com/fleetops/fleet-logistics-api/pkg/database"
	"github.com/fleetops/fleet-logistics-api/pkg/jobs"
	"github.com/fleetops/fleet-logistics-api/pkg/logger"
	corsmiddleware "github.com/fleetops/fleet-logistics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fleetops/fleet-logistics-api/pkg/middleware/requestid"
)

// @title Fleet Logistics API
// @version 1.0.0
// @description Mover lifecycle, capacity-checked loading and mission tracking
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, leaderboard cache disabled", "error", err)
		redisClient = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	itemRepo := repository.NewItemRepository(db)
	moverRepo := repository.NewMoverRepository(db)
	loadRepo := repository.NewLoadRepository(db)
	logRepo := repository.NewLogRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	queryTimeout := cfg.Database.QueryTimeout
	itemSvc := service.NewItemService(itemRepo, validate, logr, queryTimeout)
	moverSvc := service.NewMoverService(moverRepo, loadRepo, itemSvc, validate, logr, queryTimeout)
	leaderboardSvc := service.NewLeaderboardService(loadRepo, cacheRepo, metricsSvc, logr,
		cfg.Leaderboard.CacheTTL, queryTimeout, cfg.Leaderboard.CacheEnabled)
	auditSvc := service.NewAuditService(logRepo, nil, nil, logr, cfg.Audit.ExportMaxRows, queryTimeout)

	refreshQueue := jobs.NewQueue("leaderboard-refresh",
		func(ctx context.Context, _ jobs.Job) error { return leaderboardSvc.Refresh(ctx) },
		jobs.QueueConfig{
			Workers:    cfg.Leaderboard.RefreshWorkers,
			MaxRetries: cfg.Leaderboard.RefreshRetries,
			Logger:     logr,
		})
	refreshQueue.Start(ctx)
	defer refreshQueue.Stop()

	moverSvc.OnMissionComplete(func(moverID string) {
		if err := leaderboardSvc.Invalidate(context.Background()); err != nil {
			logr.Warn("failed to invalidate leaderboard cache", zap.String("mover_id", moverID), zap.Error(err))
		}
		job := jobs.Job{ID: uuid.NewString(), Type: "leaderboard_refresh", Payload: moverID}
		if err := refreshQueue.Enqueue(job); err != nil {
			logr.Warn("failed to enqueue leaderboard refresh", zap.String("mover_id", moverID), zap.Error(err))
		}
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix,
		handler.NewItemHandler(itemSvc),
		handler.NewMoverHandler(moverSvc, leaderboardSvc),
		handler.NewAuditHandler(auditSvc, cfg.Audit.PageSize),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
