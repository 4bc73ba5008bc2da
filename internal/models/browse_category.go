package models

import (
	"time"

	"github.com/google/uuid"
)

// BrowseCategory represents a curated homepage category tile that links to
// a preset listing search
type BrowseCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	Query     *string   `json:"query,omitempty" db:"query"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateBrowseCategoryRequest represents the admin request to add a category
type CreateBrowseCategoryRequest struct {
	Label     string  `json:"label" binding:"required"`
	ImageURL  *string `json:"image_url,omitempty"`
	Query     *string `json:"query,omitempty"`
	SortOrder int     `json:"sort_order,omitempty"`
}

// UpdateBrowseCategoryRequest updates a category. Nil fields are unchanged.
type UpdateBrowseCategoryRequest struct {
	Label     *string `json:"label,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	Query     *string `json:"query,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}
