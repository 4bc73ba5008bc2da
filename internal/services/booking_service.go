package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
)

// BookingService handles the booking lifecycle: public creation, admin
// approval/denial/cancellation and rescheduling
type BookingService struct {
	bookingRepo *database.BookingRepository
	listingRepo *database.ListingRepository
	notifier    BookingNotifier
	logger      *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	listingRepo *database.ListingRepository,
	notifier BookingNotifier,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateBooking creates a pending, unpaid booking. The total is snapshotted
// from the listing's current nightly rate at creation time.
func (s *BookingService) CreateBooking(req *models.CreateBookingRequest) (*models.Booking, error) {
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid listing_id", ErrInvalidInput)
	}

	checkin, checkout, err := req.Stay()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	listing, err := s.listingRepo.GetActiveByID(listingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	booking := &models.Booking{
		ListingID:     listing.ID,
		ListingTitle:  listing.Title,
		GuestName:     req.Name,
		GuestEmail:    req.Email,
		Checkin:       checkin,
		Checkout:      checkout,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		TotalAmount:   StayTotal(checkin, checkout, listing.PricePerDay),
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"listing_id": listing.ID,
		"nights":     Nights(checkin, checkout),
		"total":      booking.TotalAmount,
	}).Info("Booking created")

	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// ListBookings retrieves bookings for the admin back office
func (s *BookingService) ListBookings(filter models.BookingListFilter) ([]models.Booking, error) {
	return s.bookingRepo.List(filter)
}

// UpdateStatus sets a booking's status. Any valid status can be set from any
// current status, so an admin can deny an already-approved booking.
func (s *BookingService) UpdateStatus(bookingID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, status); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"status":     status,
	}).Info("Booking status updated")

	s.notifyStatusChange(booking)

	return booking, nil
}

// Approve approves a booking and notifies the guest
func (s *BookingService) Approve(bookingID uuid.UUID) (*models.Booking, error) {
	return s.UpdateStatus(bookingID, models.BookingStatusApproved)
}

// Deny denies a booking and notifies the guest
func (s *BookingService) Deny(bookingID uuid.UUID) (*models.Booking, error) {
	return s.UpdateStatus(bookingID, models.BookingStatusDenied)
}

// Cancel cancels a booking and notifies the guest
func (s *BookingService) Cancel(bookingID uuid.UUID) (*models.Booking, error) {
	return s.UpdateStatus(bookingID, models.BookingStatusCancelled)
}

// Reschedule moves a booking to new dates and recomputes its total from the
// listing's current nightly rate
func (s *BookingService) Reschedule(bookingID uuid.UUID, checkin, checkout time.Time) (*models.Booking, error) {
	if !checkout.After(checkin) {
		return nil, fmt.Errorf("%w: checkout must be after checkin", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(booking.ListingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	total := StayTotal(checkin, checkout, listing.PricePerDay)
	if err := s.bookingRepo.UpdateDates(bookingID, checkin, checkout, total); err != nil {
		return nil, fmt.Errorf("failed to update booking dates: %w", err)
	}

	booking, err = s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"checkin":    checkin,
		"checkout":   checkout,
		"total":      total,
	}).Info("Booking rescheduled")

	if s.notifier != nil {
		if err := s.notifier.BookingRescheduled(booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).
				Warn("Failed to send reschedule notification")
		}
	}

	return booking, nil
}

// DashboardStats summarizes bookings for the admin dashboard
type DashboardStats struct {
	BookingsByStatus map[models.BookingStatus]int `json:"bookings_by_status"`
	PaidRevenue      float64                      `json:"paid_revenue"`
	ActiveListings   int                          `json:"active_listings"`
}

// Stats loads the admin dashboard summary
func (s *BookingService) Stats() (*DashboardStats, error) {
	byStatus, err := s.bookingRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	revenue, err := s.bookingRepo.PaidRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	listings, err := s.listingRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	return &DashboardStats{
		BookingsByStatus: byStatus,
		PaidRevenue:      revenue,
		ActiveListings:   listings,
	}, nil
}

// notifyStatusChange sends the guest email matching the new status.
// Failures are logged and never surfaced to the caller.
func (s *BookingService) notifyStatusChange(booking *models.Booking) {
	if s.notifier == nil {
		return
	}

	var err error
	switch booking.Status {
	case models.BookingStatusApproved:
		err = s.notifier.BookingApproved(booking)
	case models.BookingStatusDenied:
		err = s.notifier.BookingDenied(booking)
	case models.BookingStatusCancelled:
		err = s.notifier.BookingCancelled(booking)
	default:
		return
	}

	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"status":     booking.Status,
		}).Warn("Failed to send booking notification")
	}
}
