package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a message submitted through the public contact form
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject,omitempty" db:"subject"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateContactRequest represents the public contact form submission
type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message" binding:"required"`
}
