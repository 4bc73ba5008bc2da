package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/middleware"
	"github.com/Manowcrm/Helnay/internal/models"
	"github.com/Manowcrm/Helnay/internal/services"
)

// FilterHandler serves the public filter/category catalogs and their
// admin management endpoints
type FilterHandler struct {
	filterRepo      *database.FilterServiceRepository
	categoryRepo    *database.BrowseCategoryRepository
	activityService *services.ActivityService
	logger          *logrus.Logger
}

// NewFilterHandler creates a new FilterHandler
func NewFilterHandler(filterRepo *database.FilterServiceRepository, categoryRepo *database.BrowseCategoryRepository, activityService *services.ActivityService, logger *logrus.Logger) *FilterHandler {
	return &FilterHandler{
		filterRepo:      filterRepo,
		categoryRepo:    categoryRepo,
		activityService: activityService,
		logger:          logger,
	}
}

// ListFilters returns active filter services for the public search UI
// GET /api/v1/filters
func (h *FilterHandler) ListFilters(c *gin.Context) {
	filters, err := h.filterRepo.List(true)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list filter services")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list filters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// ListCategories returns active browse categories for the public homepage
// GET /api/v1/categories
func (h *FilterHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List(true)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list browse categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AdminListFilters returns all filter services including inactive ones
// GET /api/v1/admin/filters
func (h *FilterHandler) AdminListFilters(c *gin.Context) {
	filters, err := h.filterRepo.List(false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list filter services")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list filters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// CreateFilter adds a filter service
// POST /api/v1/admin/filters
func (h *FilterHandler) CreateFilter(c *gin.Context) {
	var req models.CreateFilterServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	service := &models.FilterService{
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := h.filterRepo.Create(service); err != nil {
		h.logger.WithError(err).Error("Failed to create filter service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create filter"})
		return
	}

	h.recordActivity(c, "Created filter service "+service.Name, service.ID)

	c.JSON(http.StatusCreated, gin.H{"filter": service})
}

// UpdateFilter modifies a filter service in place
// PUT /api/v1/admin/filters/:id
func (h *FilterHandler) UpdateFilter(c *gin.Context) {
	filterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFilterServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	service, err := h.filterRepo.GetByID(filterID)
	if err != nil {
		respondRepoError(c, err, "filter")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Icon != nil {
		service.Icon = req.Icon
	}
	if req.SortOrder != nil {
		service.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.filterRepo.Update(service); err != nil {
		respondRepoError(c, err, "filter")
		return
	}

	h.recordActivity(c, "Updated filter service "+service.Name, service.ID)

	c.JSON(http.StatusOK, gin.H{"filter": service})
}

// DeleteFilter removes a filter service
// DELETE /api/v1/admin/filters/:id
func (h *FilterHandler) DeleteFilter(c *gin.Context) {
	filterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.filterRepo.Delete(filterID); err != nil {
		respondRepoError(c, err, "filter")
		return
	}

	h.recordActivity(c, "Deleted filter service", filterID)

	c.JSON(http.StatusOK, gin.H{"message": "Filter deleted"})
}

// AdminListCategories returns all browse categories including inactive ones
// GET /api/v1/admin/categories
func (h *FilterHandler) AdminListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List(false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list browse categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory adds a browse category
// POST /api/v1/admin/categories
func (h *FilterHandler) CreateCategory(c *gin.Context) {
	var req models.CreateBrowseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	category := &models.BrowseCategory{
		Label:     req.Label,
		ImageURL:  req.ImageURL,
		Query:     req.Query,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := h.categoryRepo.Create(category); err != nil {
		h.logger.WithError(err).Error("Failed to create browse category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.recordActivity(c, "Created browse category "+category.Label, category.ID)

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory modifies a browse category in place
// PUT /api/v1/admin/categories/:id
func (h *FilterHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBrowseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	category, err := h.categoryRepo.GetByID(categoryID)
	if err != nil {
		respondRepoError(c, err, "category")
		return
	}

	if req.Label != nil {
		category.Label = *req.Label
	}
	if req.ImageURL != nil {
		category.ImageURL = req.ImageURL
	}
	if req.Query != nil {
		category.Query = req.Query
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.categoryRepo.Update(category); err != nil {
		respondRepoError(c, err, "category")
		return
	}

	h.recordActivity(c, "Updated browse category "+category.Label, category.ID)

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a browse category
// DELETE /api/v1/admin/categories/:id
func (h *FilterHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryRepo.Delete(categoryID); err != nil {
		respondRepoError(c, err, "category")
		return
	}

	h.recordActivity(c, "Deleted browse category", categoryID)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *FilterHandler) recordActivity(c *gin.Context, detail string, targetID uuid.UUID) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		return
	}

	h.activityService.Record(services.RecordParams{
		UserID:    &userCtx.UserID,
		UserEmail: userCtx.Email,
		Action:    models.ActionUpdateFilters,
		Detail:    detail,
		TargetID:  &targetID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
