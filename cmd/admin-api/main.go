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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mathcode/tutor-admin-api/api/swagger"
	"github.com/mathcode/tutor-admin-api/internal/credentials"
	"github.com/mathcode/tutor-admin-api/internal/handler"
	"github.com/mathcode/tutor-admin-api/internal/middleware"
	"github.com/mathcode/tutor-admin-api/internal/platform"
	"github.com/mathcode/tutor-admin-api/internal/repository"
	"github.com/mathcode/tutor-admin-api/internal/saga"
	"github.com/mathcode/tutor-admin-api/internal/service"
	"github.com/mathcode/tutor-admin-api/internal/store"
	"github.com/mathcode/tutor-admin-api/pkg/cache"
	"github.com/mathcode/tutor-admin-api/pkg/config"
	"github.com/mathcode/tutor-admin-api/pkg/database"
	"github.com/mathcode/tutor-admin-api/pkg/logger"
	corsmiddleware "github.com/mathcode/tutor-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mathcode/tutor-admin-api/pkg/middleware/requestid"
)

// @title Tutor Admin API
// @version 0.1.0
// @description Headless admin console for the tutoring platform
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

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	db, err := database.NewPostgres(cfg)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if cfg.Migrations.Auto {
		if err := database.Migrate(db, cfg.Migrations.Dir); err != nil {
			logr.Sugar().Fatalw("migrations failed", "error", err)
		}
	}

	credStore := credentials.NewStore(redisClient)
	client := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.Timeout, credStore, logr)

	metricsSvc := service.NewMetricsService()
	client.SetMetrics(metricsSvc)

	userStore := store.NewUserStore()
	packageStore := store.NewPackageStore()
	sessionStore := store.NewSessionStore()

	cacheRepo := repository.NewCacheRepository(redisClient)
	journalRepo := repository.NewSagaJournalRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	purchase := saga.NewCreditsSaga(client, client, journalRepo, metricsSvc.RecordSagaOutcome, logr)

	authSvc := service.NewAuthService(client, credStore, nil, logr)
	userSvc := service.NewUserService(client, userStore, nil, logr)
	packageSvc := service.NewPackageService(client, purchase, packageStore, nil, logr)
	sessionSvc := service.NewSessionService(client, client, sessionStore, nil, logr)
	dashboardSvc := service.NewDashboardService(client, cacheRepo, userStore, packageStore, sessionStore, cfg.Dashboard.CacheTTL, metricsSvc, logr)
	exportSvc := service.NewExportService(cacheRepo, sessionStore, userStore, service.ExportConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		ResultTTL:  cfg.Exports.ResultTTL,
	}, nil, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Audit(auditRepo, credStore, logr))

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	packageHandler := handler.NewPackageHandler(packageSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireCredentials(credStore), authHandler.Me)

	secured := api.Group("", middleware.RequireCredentials(credStore))

	users := secured.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/:id/credits", userHandler.AddCredits)
	users.POST("/:id/guardians", userHandler.Link)
	users.DELETE("/:id/guardians/:guardianId", userHandler.Unlink)

	packages := secured.Group("/packages")
	packages.GET("", packageHandler.List)
	packages.POST("", packageHandler.Create)
	packages.GET("/pricing", packageHandler.Pricing)
	packages.GET("/:id", packageHandler.Get)
	packages.PATCH("/:id", packageHandler.Update)
	packages.PUT("/:id/assign-tutor", packageHandler.AssignTutor)

	sessions := secured.Group("/sessions")
	sessions.GET("", sessionHandler.List)
	sessions.POST("", sessionHandler.Create)
	sessions.GET("/week", sessionHandler.Week)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.PATCH("/:id", sessionHandler.Update)
	sessions.PATCH("/:id/status", sessionHandler.UpdateStatus)
	sessions.DELETE("/:id", sessionHandler.Delete)

	secured.GET("/dashboard", dashboardHandler.Overview)

	exports := secured.Group("/exports")
	exports.POST("", exportHandler.Create)
	exports.GET("/:id", exportHandler.Get)

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
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown incomplete", "error", err)
	}
}
