package main

import (
	"log"

	"poolbet/config"
	"poolbet/handlers"
	"poolbet/middleware"
	"poolbet/models"
	"poolbet/routes"
	"poolbet/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Pool{},
		&models.Participant{},
		&models.Game{},
		&models.Guess{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	verifier := services.NewIdentityVerifier(cfg.GoogleUserInfoURL)
	authService := services.NewAuthService(db, verifier, cfg.JWTSecret)
	guessService := services.NewGuessService(db, redisClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	guessHandler := handlers.NewGuessHandler(guessService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, guessHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
