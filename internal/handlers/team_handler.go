package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/middleware"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// TeamHandler handles super-admin team management endpoints
type TeamHandler struct {
	authService     *services.AuthService
	activityService *services.ActivityService
	logger          *logrus.Logger
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(authService *services.AuthService, activityService *services.ActivityService, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		authService:     authService,
		activityService: activityService,
		logger:          logger,
	}
}

// List returns all admin accounts
// GET /api/v1/admin/users
func (h *TeamHandler) List(c *gin.Context) {
	users, err := h.authService.ListTeam()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list team members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list team members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// Create creates a new admin account
// POST /api/v1/admin/users
func (h *TeamHandler) Create(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context not found", "code": "MISSING_USER_CONTEXT"})
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.authService.CreateTeamMember(userCtx.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recordActivity(c, models.ActionCreateUser, "Created admin account "+user.Email, user.ID)

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// SetActive enables or disables an admin account
// PUT /api/v1/admin/users/:id/active
func (h *TeamHandler) SetActive(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.authService.SetActive(userID, *req.IsActive); err != nil {
		respondServiceError(c, err)
		return
	}

	detail := "Disabled admin account"
	if *req.IsActive {
		detail = "Enabled admin account"
	}
	h.recordActivity(c, models.ActionUpdateUser, detail, userID)

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func (h *TeamHandler) recordActivity(c *gin.Context, action models.ActivityAction, detail string, targetID uuid.UUID) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		return
	}

	h.activityService.Record(services.RecordParams{
		UserID:    &userCtx.UserID,
		UserEmail: userCtx.Email,
		Action:    action,
		Detail:    detail,
		TargetID:  &targetID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
