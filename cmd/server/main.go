package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/marketpro/pos-server/internal/api"
	"github.com/marketpro/pos-server/internal/config"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/marketpro/pos-server/internal/repository"
	"github.com/marketpro/pos-server/internal/service"
	"github.com/marketpro/pos-server/internal/utils"
)

func main() {
	logger := utils.NewLogger()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment defaults")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Seed the in-memory store: default settings overridden by config,
	// plus the built-in admin account. Everything else starts empty and
	// lives only as long as the process.
	settings := models.DefaultSettings()
	settings.AppName = cfg.Store.AppName
	settings.ProfitMargin = cfg.Store.ProfitMargin
	settings.LowStockThreshold = cfg.Store.LowStockThreshold

	repo := repository.NewMemoryRepositoryFromState(repository.State{
		Users:    []models.User{*models.InitialAdmin()},
		Settings: settings,
	})

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting %s server on %s", settings.AppName, serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
