package models

import (
	"time"

	"github.com/google/uuid"
)

// FilterService represents one amenity/service offered by listings and
// exposed as a search filter on the public site
type FilterService struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Icon      *string   `json:"icon,omitempty" db:"icon"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateFilterServiceRequest represents the admin request to add a filter service
type CreateFilterServiceRequest struct {
	Name      string  `json:"name" binding:"required"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder int     `json:"sort_order,omitempty"`
}

// UpdateFilterServiceRequest updates a filter service. Nil fields are unchanged.
type UpdateFilterServiceRequest struct {
	Name      *string `json:"name,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}
