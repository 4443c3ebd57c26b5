package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/services"
)

// AnswerHandler serves the journal answer endpoints.
type AnswerHandler struct {
	answers *services.AnswerService
}

// NewAnswerHandler constructs an AnswerHandler.
func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type saveAnswerRequest struct {
	QuestionID int64  `json:"questionId" binding:"required"`
	Text       string `json:"text" binding:"required"`
	EmotionTag string `json:"emotionTag"`
}

// Save records the caller's answer to a question.
func (h *AnswerHandler) Save(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	var req saveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	answer, err := h.answers.Save(c.Request.Context(), userID, req.QuestionID, req.Text, req.EmotionTag)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answerResponse(answer))
}

// List returns a page of the caller's answers, newest first.
func (h *AnswerHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	list, err := h.answers.List(c.Request.Context(), userID, page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, a := range list {
		items = append(items, answerResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"answers": items, "page": page, "size": size})
}

func answerResponse(a *models.UserAnswer) gin.H {
	return gin.H{
		"id":         a.ID,
		"questionId": a.QuestionID,
		"text":       a.Text,
		"emotionTag": a.EmotionTag,
		"answeredAt": a.AnsweredAt,
	}
}
