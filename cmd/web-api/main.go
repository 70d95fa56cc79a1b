package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mal2-project/fake-shop-detection-database/internal/api"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/logger"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/redis"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting fake-shop detection database")

	// Initialize database
	if err := repository.InitDB(cfg); err != nil {
		zap.L().Fatal("Failed to initialize database",
			zap.Error(err))
	}
	defer repository.Close()

	// Initialize Redis (optional, report rate limiting falls back without it)
	if err := redis.Init(cfg); err != nil {
		zap.L().Warn("Redis initialization failed, using in-memory rate limiting",
			zap.Error(err))
	} else {
		defer redis.Close()
	}

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Setup routes
	api.SetupRouter(r)

	logger.Info("Listening",
		zap.String("addr", cfg.GetWebServiceAddr()),
		zap.String("database", cfg.Database.Driver))

	// Start server
	if err := r.Run(fmt.Sprintf("%s:%d", cfg.WebService.Host, cfg.WebService.Port)); err != nil {
		zap.L().Fatal("Failed to start server",
			zap.Error(err))
	}
}
