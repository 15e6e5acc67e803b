package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trackitnow/trackitnow-backend/internal/config"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/handlers"
	"github.com/trackitnow/trackitnow-backend/internal/middleware"
	"github.com/trackitnow/trackitnow-backend/internal/migrations"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/internal/routes"
	"github.com/trackitnow/trackitnow-backend/internal/services"
	"github.com/trackitnow/trackitnow-backend/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()
	env := config.AppConfig.Env
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Trackitnow Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Cache
	database.Connect()
	database.InitRedis()

	// 2. Schema
	logger.Info().Msg("🔄 Running Database Migrations...")
	if err := database.AutoMigrate(database.DB, models.All()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run versioned migrations")
	}
	logger.Info().Msg("✅ Database Migrations Complete")

	// 3. Media store (profile photos)
	if store, err := services.NewR2Store(context.Background(), config.AppConfig); err != nil {
		logger.Warn().Err(err).Msg("Profile photo uploads are disabled")
	} else {
		handlers.Media = store
	}

	// 4. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware())

	routes.RegisterSystemRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit())
	routes.Register(api)

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server gracefully...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if database.Redis != nil {
		_ = database.Redis.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info().Msg("✅ Server exited gracefully")
}
