package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Zulu-012/luct-reporting-system/api/swagger"
	"github.com/Zulu-012/luct-reporting-system/internal/gateway"
	"github.com/Zulu-012/luct-reporting-system/internal/handler"
	"github.com/Zulu-012/luct-reporting-system/internal/middleware"
	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
	"github.com/Zulu-012/luct-reporting-system/internal/repository"
	"github.com/Zulu-012/luct-reporting-system/internal/service"
	"github.com/Zulu-012/luct-reporting-system/pkg/cache"
	"github.com/Zulu-012/luct-reporting-system/pkg/config"
	"github.com/Zulu-012/luct-reporting-system/pkg/logger"
	corsmiddleware "github.com/Zulu-012/luct-reporting-system/pkg/middleware/cors"
	reqidmiddleware "github.com/Zulu-012/luct-reporting-system/pkg/middleware/requestid"
)

// @title LUCT Reporting System API
// @version 1.0.0
// @description Role-based academic reporting and monitoring service
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

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the service runs with caching off and
	// in-process form sessions and rating memory.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	gw := gateway.NewClient(cfg.Gateway, logr, metricsSvc)
	authSvc := service.NewAuthService(cfg.JWT.Secret)

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Gateway:       gw,
		Cache:         cacheSvc,
		Logger:        logr,
		CacheTTL:      cfg.Dashboard.CacheTTL,
		RecentLimit:   cfg.Dashboard.RecentLimit,
		UpcomingScope: cfg.Dashboard.UpcomingScope,
	})
	monitoringSvc := service.NewMonitoringService(service.MonitoringServiceParams{
		Gateway:      gw,
		Cache:        cacheSvc,
		Logger:       logr,
		CacheTTL:     cfg.Monitoring.CacheTTL,
		TopCourses:   cfg.Monitoring.TopCourses,
		ExportPrefix: cfg.Exports.FilenamePrefix,
	})
	formSvc := service.NewReportFormService(service.ReportFormServiceParams{
		Gateway:    gw,
		Cache:      cacheSvc,
		Logger:     logr,
		SessionTTL: cfg.ReportForm.SessionTTL,
		MaxWeeks:   cfg.ReportForm.MaxWeeks,
	})
	ratingSvc := service.NewRatingService(service.RatingServiceParams{
		Gateway: gw,
		Cache:   cacheSvc,
		Logger:  logr,
	})
	classSvc := service.NewClassService(service.ClassServiceParams{
		Gateway: gw,
		Logger:  logr,
	})

	handlers := handler.Handlers{
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Navigation: handler.NewNavigationHandler(navigation.NewRegistry()),
		Monitoring: handler.NewMonitoringHandler(monitoringSvc),
		Form:       handler.NewFormHandler(formSvc),
		Rating:     handler.NewRatingHandler(ratingSvc),
		Class:      handler.NewClassHandler(classSvc),
		Reports:    handler.NewReportsHandler(gw, metricsSvc),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
