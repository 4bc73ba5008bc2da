package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/middleware"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService     *services.AuthService
	activityService *services.ActivityService
	logger          *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, activityService *services.ActivityService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		activityService: activityService,
		logger:          logger,
	}
}

// Login authenticates an admin and returns a token pair
// POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.logger.WithError(err).WithField("email", req.Email).Warn("Login failed")
		respondServiceError(c, err)
		return
	}

	h.activityService.Record(services.RecordParams{
		UserID:    &response.User.ID,
		UserEmail: response.User.Email,
		Action:    models.ActionLogin,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, response)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/admin/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Profile returns the authenticated admin's account
// GET /api/v1/admin/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.authService.GetProfile(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword replaces the authenticated admin's password
// PUT /api/v1/admin/profile/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(userCtx.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	h.activityService.Record(services.RecordParams{
		UserID:    &userCtx.UserID,
		UserEmail: userCtx.Email,
		Action:    models.ActionUpdateUser,
		Detail:    "Changed own password",
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// Logout records the logout for the audit trail. Tokens are stateless, so
// the client simply discards them.
// POST /api/v1/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	h.activityService.Record(services.RecordParams{
		UserID:    &userCtx.UserID,
		UserEmail: userCtx.Email,
		Action:    models.ActionLogout,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
