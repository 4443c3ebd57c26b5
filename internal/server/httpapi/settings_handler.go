package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/services"
	"github.com/ch4-lumia/lumia-backend/internal/timex"
)

// SettingsHandler serves the per-user notification settings endpoints.
type SettingsHandler struct {
	settings *services.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the caller's notification settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	policy, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsResponse(policy))
}

type settingsUpdateRequest struct {
	NotificationInterval string `json:"notificationInterval" binding:"required"`
	NotificationTime     string `json:"notificationTime"`
	InAppEnabled         bool   `json:"inAppEnabled"`
	PushEnabled          bool   `json:"pushEnabled"`
}

// Update replaces the caller's notification settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	var req settingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mode := models.IntervalMode(req.NotificationInterval)
	if !mode.Known() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown notification interval"})
		return
	}

	upd := services.SettingsUpdate{
		IntervalMode: mode,
		InAppEnabled: req.InAppEnabled,
		PushEnabled:  req.PushEnabled,
	}
	if req.NotificationTime != "" {
		at, err := timex.ParseTimeOfDay(req.NotificationTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification time"})
			return
		}
		upd.NotificationTime = &at
	}
	if mode == models.IntervalDailySpecificTime && upd.NotificationTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification time required for daily delivery"})
		return
	}

	policy, err := h.settings.Update(c.Request.Context(), userID, upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsResponse(policy))
}

func settingsResponse(p *models.NotificationPolicy) gin.H {
	resp := gin.H{
		"notificationInterval": p.IntervalMode,
		"notificationTime":     nil,
		"inAppEnabled":         p.InAppEnabled,
		"pushEnabled":          p.PushEnabled,
	}
	if p.NotificationTime != nil {
		resp["notificationTime"] = p.NotificationTime.String()
	}
	return resp
}
