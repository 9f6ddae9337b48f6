package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/let-tech/applicant-dashboard-api/api/swagger"
	"github.com/let-tech/applicant-dashboard-api/internal/handler"
	"github.com/let-tech/applicant-dashboard-api/internal/importer"
	"github.com/let-tech/applicant-dashboard-api/internal/middleware"
	"github.com/let-tech/applicant-dashboard-api/internal/repository"
	"github.com/let-tech/applicant-dashboard-api/internal/service"
	"github.com/let-tech/applicant-dashboard-api/pkg/cache"
	"github.com/let-tech/applicant-dashboard-api/pkg/config"
	"github.com/let-tech/applicant-dashboard-api/pkg/database"
	"github.com/let-tech/applicant-dashboard-api/pkg/jobs"
	"github.com/let-tech/applicant-dashboard-api/pkg/logger"
	corsmiddleware "github.com/let-tech/applicant-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/let-tech/applicant-dashboard-api/pkg/middleware/requestid"
	"github.com/let-tech/applicant-dashboard-api/pkg/storage"
)

// @title Applicant Dashboard API
// @version 1.0.0
// @description Spreadsheet import pipeline and dashboard query service for program applicants
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	uploadStore, err := storage.NewUploadStore(cfg.Import.UploadDir)
	if err != nil {
		logr.Fatal("upload store init failed", zap.Error(err))
	}

	metricsSvc := service.NewMetricsService()

	// Redis is optional. Without it the dashboard recomputes on every hit.
	var cacheRepo *repository.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr)
	}

	applicantRepo := repository.NewApplicantRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	importJobRepo := repository.NewImportJobRepository(db)

	fileImporter := importer.New(applicantRepo, cfg.Import.BatchSize, logr)

	authSvc := service.NewAuthService(cfg.JWT)
	applicantSvc := service.NewApplicantService(applicantRepo, profileRepo, logr)
	dashboardSvc := service.NewDashboardService(applicantRepo, profileRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(applicantSvc, dashboardSvc, logr)
	profileSvc := service.NewProfileService(profileRepo, nil, logr)

	var importSvc *service.ImportService
	queue := jobs.NewQueue("imports", func(ctx context.Context, job jobs.Job) error {
		return importSvc.ProcessJob(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Import.QueueWorkers,
		MaxRetries: cfg.Import.QueueRetries,
		Logger:     logr,
	})
	importSvc = service.NewImportService(importJobRepo, uploadStore, queue, fileImporter, dashboardSvc, metricsSvc, logr)

	queue.Start(context.Background())
	defer queue.Stop()

	applicantHandler := handler.NewApplicantHandler(applicantSvc, importSvc, exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	importHandler := handler.NewImportHandler(importSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Import.MaxUploadSize

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/applicants", applicantHandler.List)
		api.GET("/applicants/export", applicantHandler.Export)
		api.POST("/applicants/upload", middleware.RequireStaff(), applicantHandler.Upload)

		api.GET("/dashboard/charts", dashboardHandler.Charts)
		api.GET("/dashboard/kpis", dashboardHandler.KPIs)
		api.GET("/dashboard/filter-options", dashboardHandler.FilterOptions)

		api.GET("/imports/latest", importHandler.Latest)
		api.GET("/imports/:id", importHandler.Status)

		api.POST("/profiles", middleware.RequireStaff(), profileHandler.Assign)
		api.POST("/profiles/cleanup", middleware.RequireStaff(), profileHandler.CleanupDuplicates)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
