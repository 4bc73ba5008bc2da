package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Listing represents a rental property available for booking
type Listing struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Location     *string    `json:"location,omitempty" db:"location"`
	PropertyType *string    `json:"property_type,omitempty" db:"property_type"`
	PricePerDay  float64    `json:"price_per_day" db:"price_per_day"`
	MaxGuests    *int       `json:"max_guests,omitempty" db:"max_guests"`
	Bedrooms     *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int       `json:"bathrooms,omitempty" db:"bathrooms"`
	CoverImage   *string    `json:"cover_image,omitempty" db:"cover_image"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	// Populated by detail queries, not stored on the listings row
	Images   []ListingImage `json:"images,omitempty" db:"-"`
	Services []string       `json:"services,omitempty" db:"-"`
}

// ListingImage represents one gallery image of a listing
type ListingImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	URL       string    `json:"url" db:"url"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateListingRequest represents the admin request to create a listing
type CreateListingRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	PricePerDay  float64  `json:"price_per_day" binding:"required"`
	MaxGuests    *int     `json:"max_guests,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Images       []string `json:"images,omitempty"`
	Services     []string `json:"services,omitempty"`
}

// Validate validates the create listing request
func (r *CreateListingRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}

	if r.PricePerDay <= 0 {
		return errors.New("price_per_day must be greater than zero")
	}

	return nil
}

// UpdateListingRequest represents the admin request to update a listing.
// Nil fields are left unchanged.
type UpdateListingRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	PricePerDay  *float64 `json:"price_per_day,omitempty"`
	MaxGuests    *int     `json:"max_guests,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	Images       []string `json:"images,omitempty"`
	Services     []string `json:"services,omitempty"`
}

// Validate validates the update listing request
func (r *UpdateListingRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("title cannot be empty")
	}

	if r.PricePerDay != nil && *r.PricePerDay <= 0 {
		return errors.New("price_per_day must be greater than zero")
	}

	return nil
}

// ListingSearchFilter narrows public listing searches
type ListingSearchFilter struct {
	Query        string   // matched against title and description
	Location     string   // matched against location
	PropertyType string   // exact match
	MinPrice     *float64
	MaxPrice     *float64
	Services     []string // listing must offer all named services
	Limit        int
	Offset       int
}
