package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// ActivityHandler serves the admin activity log
type ActivityHandler struct {
	activityService *services.ActivityService
	logger          *logrus.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *services.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List returns activity log entries, newest first
// GET /api/v1/admin/activity
func (h *ActivityHandler) List(c *gin.Context) {
	filter := models.ActivityLogFilter{
		Action: models.ActivityAction(c.Query("action")),
	}

	if v := c.Query("user_id"); v != "" {
		userID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		filter.UserID = &userID
	}

	if v := c.Query("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since timestamp, expected RFC3339"})
			return
		}
		filter.Since = &since
	}

	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	entries, err := h.activityService.List(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list activity log")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries, "count": len(entries)})
}

// Stats returns activity volume summaries
// GET /api/v1/admin/activity/stats
func (h *ActivityHandler) Stats(c *gin.Context) {
	stats, err := h.activityService.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load activity stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
