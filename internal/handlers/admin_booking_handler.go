package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/middleware"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// AdminBookingHandler handles the back-office booking endpoints
type AdminBookingHandler struct {
	bookingService  *services.BookingService
	activityService *services.ActivityService
	contactRepo     *database.ContactRepository
	logger          *logrus.Logger
}

// NewAdminBookingHandler creates a new AdminBookingHandler
func NewAdminBookingHandler(bookingService *services.BookingService, activityService *services.ActivityService, contactRepo *database.ContactRepository, logger *logrus.Logger) *AdminBookingHandler {
	return &AdminBookingHandler{
		bookingService:  bookingService,
		activityService: activityService,
		contactRepo:     contactRepo,
		logger:          logger,
	}
}

// List returns bookings filtered by status/payment status/listing
// GET /api/v1/admin/bookings
func (h *AdminBookingHandler) List(c *gin.Context) {
	filter := models.BookingListFilter{
		Status:        models.BookingStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
	}

	if filter.Status != "" && !models.ValidBookingStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	if v := c.Query("listing_id"); v != "" {
		listingID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing_id"})
			return
		}
		filter.ListingID = &listingID
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

	bookings, err := h.bookingService.ListBookings(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// Get returns one booking
// GET /api/v1/admin/bookings/:id
func (h *AdminBookingHandler) Get(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Approve approves a booking
// PUT /api/v1/admin/bookings/:id/approve
func (h *AdminBookingHandler) Approve(c *gin.Context) {
	h.transition(c, models.BookingStatusApproved, models.ActionApproveBooking)
}

// Deny denies a booking. Works from any current status.
// PUT /api/v1/admin/bookings/:id/deny
func (h *AdminBookingHandler) Deny(c *gin.Context) {
	h.transition(c, models.BookingStatusDenied, models.ActionDenyBooking)
}

// Cancel cancels a booking
// PUT /api/v1/admin/bookings/:id/cancel
func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	h.transition(c, models.BookingStatusCancelled, models.ActionCancelBooking)
}

// UpdateStatus sets an arbitrary (valid) status on a booking
// PUT /api/v1/admin/bookings/:id/status
func (h *AdminBookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateStatus(bookingID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recordActivity(c, models.ActionUpdateBooking, "Set booking status to "+string(req.Status), bookingID)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// UpdateDates reschedules a booking's stay
// PUT /api/v1/admin/bookings/:id/dates
func (h *AdminBookingHandler) UpdateDates(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBookingDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	checkin, checkout, err := req.Stay()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.Reschedule(bookingID, checkin, checkout)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recordActivity(c, models.ActionUpdateBooking, "Rescheduled booking", bookingID)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Dashboard returns booking and listing summary stats
// GET /api/v1/admin/dashboard
func (h *AdminBookingHandler) Dashboard(c *gin.Context) {
	stats, err := h.bookingService.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	unread, err := h.contactRepo.CountUnread()
	if err != nil {
		h.logger.WithError(err).Warn("Failed to count unread messages")
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "unread_messages": unread})
}

func (h *AdminBookingHandler) transition(c *gin.Context, status models.BookingStatus, action models.ActivityAction) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.UpdateStatus(bookingID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recordActivity(c, action, "Booking for "+booking.ListingTitle, bookingID)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *AdminBookingHandler) recordActivity(c *gin.Context, action models.ActivityAction, detail string, targetID uuid.UUID) {
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
