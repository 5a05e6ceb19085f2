package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"campushire/internal/app"
	"campushire/internal/config"
	"campushire/internal/database"
	apphttp "campushire/internal/http"
	"campushire/internal/http/handlers"
	"campushire/internal/http/metrics"
	httpmw "campushire/internal/http/middleware"
	"campushire/internal/http/response"
	"campushire/internal/observability"
	"campushire/internal/repository/postgres"
	"campushire/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.IsDevelopment())
	defer func() { _ = logger.Sync() }()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	opportunityRepo := postgres.NewOpportunityRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, jwtProvider, cfg.AccessTokenTTL)
	opportunityService := app.NewOpportunityService(opportunityRepo, applicationRepo, app.SystemClock)
	applicationService := app.NewApplicationService(applicationRepo, opportunityRepo, userRepo, app.SystemClock)
	adminService := app.NewAdminService(statsRepo, app.SystemClock)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	adminHandler := handlers.NewAdminHandler(adminService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)
	response.SetLogger(logger)
	response.SetExposeDetail(cfg.IsDevelopment())

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		OpportunityHandler: opportunityHandler,
		ApplicationHandler: applicationHandler,
		AdminHandler:       adminHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
