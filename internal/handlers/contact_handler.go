package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// ContactHandler handles the public contact form and the admin inbox
type ContactHandler struct {
	contactRepo *database.ContactRepository
	notifier    services.BookingNotifier
	logger      *logrus.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactRepo *database.ContactRepository, notifier services.BookingNotifier, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		contactRepo: contactRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create stores a contact form submission and forwards it to the admin
// inbox. Forwarding is best effort; the submission is stored either way.
// POST /api/v1/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contactRepo.Create(contact); err != nil {
		h.logger.WithError(err).Error("Failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	if h.notifier != nil {
		if err := h.notifier.ContactReceived(contact); err != nil {
			h.logger.WithError(err).WithField("contact_id", contact.ID).
				Warn("Failed to forward contact message")
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": contact.ID})
}

// List returns contact messages for the admin inbox
// GET /api/v1/admin/contact
func (h *ContactHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.contactRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

// Delete removes a contact message from the inbox
// DELETE /api/v1/admin/contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactRepo.Delete(contactID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// MarkRead flags a contact message as read
// PUT /api/v1/admin/contact/:id/read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactRepo.MarkRead(contactID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}
