package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scholix-api/api/swagger"
	"github.com/noah-isme/scholix-api/internal/handler"
	"github.com/noah-isme/scholix-api/internal/middleware"
	"github.com/noah-isme/scholix-api/internal/repository"
	"github.com/noah-isme/scholix-api/internal/service"
	"github.com/noah-isme/scholix-api/pkg/cache"
	"github.com/noah-isme/scholix-api/pkg/config"
	"github.com/noah-isme/scholix-api/pkg/database"
	"github.com/noah-isme/scholix-api/pkg/export"
	"github.com/noah-isme/scholix-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scholix-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scholix-api/pkg/middleware/requestid"
)

// @title Scholix API
// @version 0.1.0
// @description School administration reporting backend
// @BasePath /
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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, report caching disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Reports.CacheTTL, logr, true)
		}
	}

	financeRepo := repository.NewFinanceReportRepository(db)
	marksRepo := repository.NewMarksRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)

	financeSvc := service.NewFinanceReportService(financeRepo, cacheSvc, metricsSvc, logr, service.FinanceReportServiceConfig{
		DetailLimit: cfg.Reports.DetailLimit,
		CacheTTL:    cfg.Reports.CacheTTL,
	})
	academicSvc := service.NewAcademicReportService(marksRepo, settingsRepo, metricsSvc, logr)
	directorySvc := service.NewDirectoryService(directoryRepo, logr)
	exportSvc := service.NewExportService(financeSvc, export.NewCSVExporter(), export.NewPDFExporter(), validator.New(), logr)

	financeHandler := handler.NewFinanceReportHandler(financeSvc, exportSvc)
	academicHandler := handler.NewAcademicReportHandler(academicSvc)
	directoryHandler := handler.NewDirectoryHandler(directorySvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

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
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		reports := api.Group("/reports")
		{
			reports.GET("/transactions", financeHandler.Transactions)
			reports.GET("/transactions/export", financeHandler.TransactionsExport)
			reports.GET("/outstanding", financeHandler.Outstanding)
			reports.GET("/revenue", financeHandler.Revenue)
			reports.GET("/grades", academicHandler.Grades)
			reports.GET("/performance", academicHandler.Performance)
		}

		api.GET("/students", directoryHandler.Students)
		api.GET("/classes", directoryHandler.Classes)
		api.GET("/terms", directoryHandler.Terms)
		api.GET("/academic-years", directoryHandler.AcademicYears)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
