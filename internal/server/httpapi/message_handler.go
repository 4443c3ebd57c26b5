package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ch4-lumia/lumia-backend/internal/server/services"
)

// MessageHandler serves the scheduled message check.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// NewMessage reports whether a scheduled question is due for the caller and,
// if so, returns it. The check itself marks the question delivered.
func (h *MessageHandler) NewMessage(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	msg, err := h.messages.CheckDelivery(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"hasNewMessage": msg.HasNewMessage}
	if msg.Question != nil {
		resp["question"] = gin.H{
			"id":       msg.Question.ID,
			"text":     msg.Question.Text,
			"category": msg.Question.Category,
		}
	}
	c.JSON(http.StatusOK, resp)
}
