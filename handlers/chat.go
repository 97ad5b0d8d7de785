package handlers

import (
	"net/http"

	"tabletalk/models"
	"tabletalk/services/dialogue"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the dialogue engine over HTTP.
type ChatHandler struct {
	Svc dialogue.DialogueService
}

func NewChatHandler(svc dialogue.DialogueService) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

// HandleChatTurn processes one user utterance.
func (h *ChatHandler) HandleChatTurn(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resp, err := h.Svc.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		if dialogue.IsExtractionFailure(err) {
			// The user sees a generic processing error, not oracle internals.
			logger.Error("Turn aborted on extraction failure", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Failed to process request", "Please try again.")
			return
		}
		logger.Error("Chat turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process request", "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GreetingHandler returns the conversation opener, venue-specific when a
// restaurantId query parameter is present.
func (h *ChatHandler) GreetingHandler(c *gin.Context) {
	greeting, err := h.Svc.Greeting(c.Request.Context(), c.Query("restaurantId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to build greeting", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"greeting": greeting})
}
