package routes

import (
	"net/http"

	"poolbet/handlers"
	"poolbet/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	guessHandler *handlers.GuessHandler,
	jwtSecret string,
) {
	// Public routes
	router.POST("/users", authHandler.CreateUser)
	router.GET("/guesses/count", guessHandler.CountGuesses)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.GetProfile)
		protected.POST("/pools/:poolId/games/:gameId/guesses", guessHandler.CreateGuess)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
