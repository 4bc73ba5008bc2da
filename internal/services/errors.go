package services

import "errors"

// Sentinel errors returned by services. Handlers translate these into
// HTTP status codes with errors.Is.
var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already in use")
)
