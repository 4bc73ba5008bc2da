package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusDenied    BookingStatus = "denied"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// ValidBookingStatus reports whether s is one of the accepted booking statuses
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusDenied, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a guest reservation for a listing
type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	ListingID       uuid.UUID     `json:"listing_id" db:"listing_id"`
	ListingTitle    string        `json:"listing_title,omitempty" db:"listing_title"`
	GuestName       string        `json:"name" db:"name"`
	GuestEmail      string        `json:"email" db:"email"`
	Checkin         time.Time     `json:"checkin" db:"checkin"`
	Checkout        time.Time     `json:"checkout" db:"checkout"`
	Status          BookingStatus `json:"status" db:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentIntentID *string       `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	PaidAt          *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// IsPaid checks if the booking has been paid
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// CreateBookingRequest represents the public request to create a booking.
// Dates arrive as calendar date plus optional time-of-day strings so the
// booking form can submit them separately.
type CreateBookingRequest struct {
	ListingID    string `json:"listing_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	CheckinDate  string `json:"checkin_date" binding:"required"`
	CheckinTime  string `json:"checkin_time,omitempty"`
	CheckoutDate string `json:"checkout_date" binding:"required"`
	CheckoutTime string `json:"checkout_time,omitempty"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Stay parses the request's date and time fields into checkin and checkout
// instants. Missing times default to midnight.
func (r *CreateBookingRequest) Stay() (checkin, checkout time.Time, err error) {
	checkin, err = parseStayInstant(r.CheckinDate, r.CheckinTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid checkin: %w", err)
	}

	checkout, err = parseStayInstant(r.CheckoutDate, r.CheckoutTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid checkout: %w", err)
	}

	if !checkout.After(checkin) {
		return time.Time{}, time.Time{}, errors.New("checkout must be after checkin")
	}

	return checkin, checkout, nil
}

func parseStayInstant(date, timeOfDay string) (time.Time, error) {
	if timeOfDay == "" {
		timeOfDay = "00:00"
	}
	return time.Parse(dateLayout+" "+timeLayout, date+" "+timeOfDay)
}

// UpdateBookingStatusRequest represents an admin status change
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// UpdateBookingDatesRequest represents an admin reschedule of a booking's stay
type UpdateBookingDatesRequest struct {
	CheckinDate  string `json:"checkin_date" binding:"required"`
	CheckinTime  string `json:"checkin_time,omitempty"`
	CheckoutDate string `json:"checkout_date" binding:"required"`
	CheckoutTime string `json:"checkout_time,omitempty"`
}

// Stay parses the reschedule request's date and time fields
func (r *UpdateBookingDatesRequest) Stay() (checkin, checkout time.Time, err error) {
	req := CreateBookingRequest{
		CheckinDate:  r.CheckinDate,
		CheckinTime:  r.CheckinTime,
		CheckoutDate: r.CheckoutDate,
		CheckoutTime: r.CheckoutTime,
	}
	return req.Stay()
}

// BookingListFilter narrows admin booking listings
type BookingListFilter struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
	ListingID     *uuid.UUID
	Limit         int
	Offset        int
}
