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

	"github.com/noah-isme/timetable-engine/internal/csvio"
	"github.com/noah-isme/timetable-engine/internal/handler"
	"github.com/noah-isme/timetable-engine/internal/middleware"
	"github.com/noah-isme/timetable-engine/internal/service"
	"github.com/noah-isme/timetable-engine/internal/solver"
	"github.com/noah-isme/timetable-engine/pkg/config"
	"github.com/noah-isme/timetable-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-engine/pkg/middleware/requestid"
	"github.com/noah-isme/timetable-engine/pkg/storage"
)

// @title Timetable Engine API
// @version 1.0.0
// @description Constraint-based academic timetable generation service
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	solverCfg := solver.DefaultConfig()
	solverCfg.TerminationMinutes = cfg.Solver.TerminationMinutes
	solverCfg.TerminationSeconds = cfg.Solver.TerminationSeconds
	solverCfg.LateAcceptanceSize = cfg.Solver.LateAcceptanceSize
	solverCfg.Seed = cfg.Solver.Seed
	if cfg.Solver.UnimprovedSecondsLimit > 0 {
		limit := cfg.Solver.UnimprovedSecondsLimit
		solverCfg.UnimprovedSecondsLimit = &limit
	} else {
		solverCfg.UnimprovedSecondsLimit = nil
	}
	if err := solverCfg.Validate(); err != nil {
		logr.Sugar().Fatalw("invalid solver configuration", "error", err)
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	store := csvio.NewStore(cfg.Data.Dir, logr)
	timetableSvc := service.NewTimetableService(store, metricsSvc, solverCfg, cfg.Solver.RunTimeout, logr)

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	exportSvc := service.NewExportService(timetableSvc, exportStorage, service.ExportConfig{}, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timetableSvc.Start(ctx)
	defer timetableSvc.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Timetable:     handler.NewTimetableHandler(timetableSvc),
		Catalog:       handler.NewCatalogHandler(timetableSvc),
		Configuration: handler.NewConfigurationHandler(timetableSvc),
		Data:          handler.NewDataHandler(store),
		Export:        handler.NewExportHandler(exportSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
