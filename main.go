package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"agenda-api/config"
	"agenda-api/database"
	"agenda-api/jobs"
	"agenda-api/middleware"
	"agenda-api/routes"
	"agenda-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedData(db); err != nil {
			log.Printf("Warning: Failed to seed database: %v", err)
		}
	}

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Create router
	router := gin.Default()

	// Middleware chain
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(100, 20))

	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg.JWTSecret, emailService)

	// Background reminder dispatch
	reminderJob := jobs.NewReminderJob(db, emailService)
	if err := reminderJob.Start(); err != nil {
		log.Fatal("Failed to start reminder job:", err)
	}
	defer reminderJob.Stop()

	// Start server
	log.Printf("Starting Agenda API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
