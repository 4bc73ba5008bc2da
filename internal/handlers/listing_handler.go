package handlers

import (
	"errors"
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

// ListingHandler handles public listing browse/search and the admin
// listing CRUD
type ListingHandler struct {
	listingRepo     *database.ListingRepository
	activityService *services.ActivityService
	logger          *logrus.Logger
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingRepo *database.ListingRepository, activityService *services.ActivityService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{
		listingRepo:     listingRepo,
		activityService: activityService,
		logger:          logger,
	}
}

// Search returns active listings matching the query parameters
// GET /api/v1/listings
func (h *ListingHandler) Search(c *gin.Context) {
	filter := models.ListingSearchFilter{
		Query:        c.Query("q"),
		Location:     c.Query("location"),
		PropertyType: c.Query("type"),
		Services:     c.QueryArray("services"),
	}

	if v := c.Query("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return
		}
		filter.MinPrice = &price
	}

	if v := c.Query("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		filter.MaxPrice = &price
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

	listings, err := h.listingRepo.Search(filter)
	if err != nil {
		h.logger.WithError(err).Error("Listing search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings)})
}

// Get returns one active listing with its gallery and services
// GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingRepo.GetActiveByID(listingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to load listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	if listing.Images, err = h.listingRepo.GetImages(listingID); err != nil {
		h.logger.WithError(err).Error("Failed to load listing images")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	if listing.Services, err = h.listingRepo.GetServices(listingID); err != nil {
		h.logger.WithError(err).Error("Failed to load listing services")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// AdminGet returns any listing (active or not) for the back office
// GET /api/v1/admin/listings/:id
func (h *ListingHandler) AdminGet(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingRepo.GetByID(listingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	listing.Images, _ = h.listingRepo.GetImages(listingID)
	listing.Services, _ = h.listingRepo.GetServices(listingID)

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// Create creates a listing
// POST /api/v1/admin/listings
func (h *ListingHandler) Create(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := &models.Listing{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		PricePerDay:  req.PricePerDay,
		MaxGuests:    req.MaxGuests,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		IsActive:     true,
	}

	if err := h.listingRepo.Create(listing); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	if len(req.Images) > 0 {
		if err := h.listingRepo.ReplaceImages(listing.ID, req.Images); err != nil {
			h.logger.WithError(err).WithField("listing_id", listing.ID).
				Error("Failed to save listing images")
		}
	}
	if len(req.Services) > 0 {
		if err := h.listingRepo.SetServices(listing.ID, req.Services); err != nil {
			h.logger.WithError(err).WithField("listing_id", listing.ID).
				Error("Failed to save listing services")
		}
	}

	h.recordActivity(c, models.ActionCreateListing, "Created listing: "+listing.Title, listing.ID)

	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// Update updates a listing
// PUT /api/v1/admin/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingRepo.GetByID(listingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = req.Description
	}
	if req.Location != nil {
		listing.Location = req.Location
	}
	if req.PropertyType != nil {
		listing.PropertyType = req.PropertyType
	}
	if req.PricePerDay != nil {
		listing.PricePerDay = *req.PricePerDay
	}
	if req.MaxGuests != nil {
		listing.MaxGuests = req.MaxGuests
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms != nil {
		listing.Bathrooms = req.Bathrooms
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}

	if err := h.listingRepo.Update(listing); err != nil {
		h.logger.WithError(err).WithField("listing_id", listingID).Error("Failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	if req.Images != nil {
		if err := h.listingRepo.ReplaceImages(listingID, req.Images); err != nil {
			h.logger.WithError(err).WithField("listing_id", listingID).
				Error("Failed to update listing images")
		}
	}
	if req.Services != nil {
		if err := h.listingRepo.SetServices(listingID, req.Services); err != nil {
			h.logger.WithError(err).WithField("listing_id", listingID).
				Error("Failed to update listing services")
		}
	}

	h.recordActivity(c, models.ActionUpdateListing, "Updated listing: "+listing.Title, listing.ID)

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// Delete removes a listing
// DELETE /api/v1/admin/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.listingRepo.Delete(listingID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).WithField("listing_id", listingID).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	h.recordActivity(c, models.ActionDeleteListing, "Deleted listing", listingID)

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

func (h *ListingHandler) recordActivity(c *gin.Context, action models.ActivityAction, detail string, targetID uuid.UUID) {
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
