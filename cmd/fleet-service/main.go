package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-service/internal/auth"
	"fleet-service/internal/cache"
	"fleet-service/internal/client"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
	"fleet-service/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment, cfg.Log.Level, cfg.Log.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to init document storage")
	}

	var statsCache service.StatsCache
	if cfg.Cache.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer redisClient.Close()
		statsCache = cache.NewStatsCache(redisClient, cfg.Cache.StatsTTL)
	} else {
		appLogger.Info().Msg("REDIS_URL not set, dashboard stats are not cached")
	}

	var resolver auth.Resolver
	if cfg.Auth.JWTSecret != "" {
		resolver = auth.NewParser(cfg.Auth.JWTSecret)
	} else {
		resolver = client.NewIdentityClient(cfg.Auth)
	}

	userRepo := repository.NewUserRepository(database)
	driverRepo := repository.NewDriverRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	tripRepo := repository.NewTripRepository(database)
	payoutRepo := repository.NewPayoutRepository(database)
	incidentRepo := repository.NewIncidentRepository(database)
	documentRepo := repository.NewDocumentRepository(database)
	fuelRepo := repository.NewFuelRepository(database)
	checklistRepo := repository.NewChecklistRepository(database)
	maintenanceRepo := repository.NewMaintenanceRepository(database)
	inventoryRepo := repository.NewInventoryRepository(database)
	statsRepo := repository.NewStatsRepository(database)

	userService := service.NewUserService(userRepo, driverRepo)
	dashboardService := service.NewDashboardService(statsRepo, statsCache, appLogger)
	services := httphandler.Services{
		Users:       userService,
		Drivers:     service.NewDriverService(driverRepo, userRepo),
		Vehicles:    service.NewVehicleService(vehicleRepo),
		Assignments: service.NewAssignmentService(assignmentRepo, driverRepo, vehicleRepo),
		Trips:       service.NewTripService(tripRepo, assignmentRepo, dashboardService),
		Payouts:     service.NewPayoutService(payoutRepo, dashboardService),
		Dashboard:   dashboardService,
		Incidents:   service.NewIncidentService(incidentRepo, assignmentRepo, tripRepo),
		Fuel:        service.NewFuelService(fuelRepo, assignmentRepo),
		Checklists:  service.NewChecklistService(checklistRepo, assignmentRepo),
		Maintenance: service.NewMaintenanceService(maintenanceRepo, vehicleRepo),
		Inventory:   service.NewInventoryService(inventoryRepo),
		Documents: service.NewDocumentService(documentRepo, blobs, service.UploadLimits{
			MaxFiles:    cfg.Upload.MaxFiles,
			MaxFileSize: cfg.Upload.MaxFileSize,
		}, appLogger),
	}

	handler := httphandler.NewHandler(services, appLogger)
	authMiddleware := middleware.Auth(resolver, userService, cfg.Auth.CookieName, appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger, cfg.Upload.MaxFileSize)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", addr).Str("storage", cfg.Storage.Driver).Msg("starting fleet service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
