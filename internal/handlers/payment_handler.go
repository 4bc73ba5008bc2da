package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/services"
)

// PaymentHandler handles payment intent creation and the provider webhook
type PaymentHandler struct {
	paymentService *services.PaymentService
	logger         *logrus.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *services.PaymentService, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreateIntent creates a payment intent for a booking and returns the
// client secret the payment page needs
// POST /api/v1/bookings/:id/payment-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.paymentService.CreateIntent(bookingID)
	if err != nil {
		h.logger.WithError(err).WithField("booking_id", bookingID).Warn("Payment intent creation failed")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Webhook receives payment provider events. A bad signature is a 400; a
// persistence failure is a 500 so the provider retries the delivery.
// POST /api/v1/webhooks/stripe
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")

	if err := h.paymentService.HandleWebhook(payload, sigHeader); err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			h.logger.WithError(err).Warn("Webhook signature verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}
		if errors.Is(err, services.ErrBookingNotFound) || errors.Is(err, services.ErrInvalidInput) {
			// Nothing to do for this event; acknowledge so it is not retried
			h.logger.WithError(err).Warn("Webhook event references no known booking")
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		h.logger.WithError(err).Error("Webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
