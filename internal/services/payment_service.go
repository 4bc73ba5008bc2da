package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
)

// PaymentService drives the booking payment flow: intent creation against
// the provider and webhook reconciliation back into the bookings table
type PaymentService struct {
	bookingRepo *database.BookingRepository
	listingRepo *database.ListingRepository
	gateway     PaymentGateway
	currency    string
	logger      *logrus.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	bookingRepo *database.BookingRepository,
	listingRepo *database.ListingRepository,
	gateway PaymentGateway,
	currency string,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		gateway:     gateway,
		currency:    currency,
		logger:      logger,
	}
}

// IntentResponse is what the payment page needs to collect a payment
type IntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// CreateIntent creates a payment intent for a booking. The amount is
// recomputed from the listing's live nightly rate, so a price change between
// booking and payment is charged at the rate in effect now. Nothing is
// persisted if the provider call fails.
func (s *PaymentService) CreateIntent(bookingID uuid.UUID) (*IntentResponse, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	listing, err := s.listingRepo.GetByID(booking.ListingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	total := StayTotal(booking.Checkin, booking.Checkout, listing.PricePerDay)
	if total <= 0 {
		return nil, fmt.Errorf("%w: stay has no billable nights", ErrInvalidInput)
	}

	result, err := s.gateway.CreateIntent(&IntentRequest{
		BookingID:   booking.ID.String(),
		Amount:      AmountMinorUnits(total),
		Currency:    s.currency,
		Description: fmt.Sprintf("Booking for %s", listing.Title),
		Email:       booking.GuestEmail,
		GuestName:   booking.GuestName,
		Nights:      Nights(booking.Checkin, booking.Checkout),
		NightlyRate: listing.PricePerDay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.bookingRepo.SetPaymentIntent(booking.ID, result.IntentID, total); err != nil {
		return nil, fmt.Errorf("failed to record payment intent: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"intent_id":  result.IntentID,
		"amount":     total,
	}).Info("Payment intent created")

	return &IntentResponse{
		ClientSecret: result.ClientSecret,
		Amount:       total,
		Currency:     s.currency,
	}, nil
}

// HandleWebhook processes a provider webhook. The gateway verifies the
// signature before anything is read from the payload. Successful payment
// events mark the booking paid; all other event types are acknowledged
// without action so the provider stops retrying them.
func (s *PaymentService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := s.gateway.ParseWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Type != "payment_intent.succeeded" {
		s.logger.WithField("type", event.Type).Debug("Ignoring webhook event")
		return nil
	}

	booking, err := s.resolveBooking(event)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.MarkPaid(booking.ID); err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"intent_id":  event.IntentID,
	}).Info("Booking marked paid")

	return nil
}

// resolveBooking locates the booking a payment event refers to, preferring
// the booking id carried in the intent metadata and falling back to the
// stored intent reference
func (s *PaymentService) resolveBooking(event *WebhookEvent) (*models.Booking, error) {
	if event.BookingID != "" {
		bookingID, err := uuid.Parse(event.BookingID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed booking id in event metadata", ErrInvalidInput)
		}

		booking, err := s.bookingRepo.GetByID(bookingID)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
	}

	if event.IntentID != "" {
		booking, err := s.bookingRepo.GetByPaymentIntentID(event.IntentID)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
	}

	return nil, ErrBookingNotFound
}
