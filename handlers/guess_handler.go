package handlers

import (
	"errors"
	"net/http"

	"poolbet/services"

	"github.com/gin-gonic/gin"
)

type GuessHandler struct {
	guessService *services.GuessService
}

func NewGuessHandler(guessService *services.GuessService) *GuessHandler {
	return &GuessHandler{
		guessService: guessService,
	}
}

func (h *GuessHandler) CountGuesses(c *gin.Context) {
	count, err := h.guessService.CountGuesses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *GuessHandler) CreateGuess(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	poolID := c.Param("poolId")
	gameID := c.Param("gameId")
	if poolID == "" || gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pool and game IDs required"})
		return
	}

	var req services.CreateGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.guessService.CreateGuess(c.Request.Context(), userID.(string), poolID, gameID, &req)
	if err != nil {
		if isGuessRejection(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusCreated)
}

func isGuessRejection(err error) bool {
	return errors.Is(err, services.ErrNotPoolParticipant) ||
		errors.Is(err, services.ErrGuessAlreadySent) ||
		errors.Is(err, services.ErrGameNotFound) ||
		errors.Is(err, services.ErrGameAlreadyStarted)
}
