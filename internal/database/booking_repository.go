package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, listing_id, name, email, checkin, checkout,
			status, payment_status, total_amount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at
	`

	// Generate ID if not provided
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.ListingID, booking.GuestName, booking.GuestEmail,
		booking.Checkin, booking.Checkout,
		booking.Status, booking.PaymentStatus, booking.TotalAmount,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT b.id, b.listing_id, COALESCE(l.title, ''),
			   b.name, b.email, b.checkin, b.checkout,
			   b.status, b.payment_status, b.payment_intent_id,
			   b.total_amount, b.paid_at, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN listings l ON l.id = b.listing_id
		WHERE b.id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetByPaymentIntentID retrieves a booking by its payment intent reference
func (r *BookingRepository) GetByPaymentIntentID(intentID string) (*models.Booking, error) {
	query := `
		SELECT b.id, b.listing_id, COALESCE(l.title, ''),
			   b.name, b.email, b.checkin, b.checkout,
			   b.status, b.payment_status, b.payment_intent_id,
			   b.total_amount, b.paid_at, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN listings l ON l.id = b.listing_id
		WHERE b.payment_intent_id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, intentID))
}

// List retrieves bookings matching the filter, newest first
func (r *BookingRepository) List(filter models.BookingListFilter) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.listing_id, COALESCE(l.title, ''),
			   b.name, b.email, b.checkin, b.checkout,
			   b.status, b.payment_status, b.payment_intent_id,
			   b.total_amount, b.paid_at, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN listings l ON l.id = b.listing_id
		WHERE 1=1
	`

	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.PaymentStatus != "" {
		query += fmt.Sprintf(" AND b.payment_status = $%d", argIdx)
		args = append(args, filter.PaymentStatus)
		argIdx++
	}

	if filter.ListingID != nil {
		query += fmt.Sprintf(" AND b.listing_id = $%d", argIdx)
		args = append(args, *filter.ListingID)
		argIdx++
	}

	query += " ORDER BY b.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
		argIdx++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus updates the lifecycle status of a booking
func (r *BookingRepository) UpdateStatus(bookingID uuid.UUID, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateDates reschedules a booking's stay and its recomputed total
func (r *BookingRepository) UpdateDates(bookingID uuid.UUID, checkin, checkout time.Time, totalAmount float64) error {
	query := `
		UPDATE bookings
		SET checkin = $2, checkout = $3, total_amount = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, checkin, checkout, totalAmount)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// SetPaymentIntent records the payment intent reference and the amount quoted
// to the payment provider for it
func (r *BookingRepository) SetPaymentIntent(bookingID uuid.UUID, intentID string, totalAmount float64) error {
	query := `
		UPDATE bookings
		SET payment_intent_id = $2, total_amount = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, intentID, totalAmount)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkPaid sets the booking's payment status to paid. The update is absolute
// so replayed confirmations settle on the same state.
func (r *BookingRepository) MarkPaid(bookingID uuid.UUID) error {
	query := `
		UPDATE bookings
		SET payment_status = 'paid',
			paid_at = COALESCE(paid_at, NOW()),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CountByStatus returns booking counts per status for the admin dashboard
func (r *BookingRepository) CountByStatus() (map[models.BookingStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM bookings
		GROUP BY status
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.BookingStatus]int{}
	for rows.Next() {
		var status models.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// PaidRevenue returns the sum of paid booking totals
func (r *BookingRepository) PaidRevenue() (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_status = 'paid'
	`

	var revenue float64
	err := r.db.QueryRow(query).Scan(&revenue)
	return revenue, err
}

// scanBooking scans a single booking
func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var paymentIntentID sql.NullString
	var paidAt sql.NullTime

	err := row.Scan(
		&booking.ID, &booking.ListingID, &booking.ListingTitle,
		&booking.GuestName, &booking.GuestEmail, &booking.Checkin, &booking.Checkout,
		&booking.Status, &booking.PaymentStatus, &paymentIntentID,
		&booking.TotalAmount, &paidAt, &booking.CreatedAt, &booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Convert sql.Null* types
	if paymentIntentID.Valid {
		booking.PaymentIntentID = &paymentIntentID.String
	}
	if paidAt.Valid {
		booking.PaidAt = &paidAt.Time
	}

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		var booking models.Booking
		var paymentIntentID sql.NullString
		var paidAt sql.NullTime

		err := rows.Scan(
			&booking.ID, &booking.ListingID, &booking.ListingTitle,
			&booking.GuestName, &booking.GuestEmail, &booking.Checkin, &booking.Checkout,
			&booking.Status, &booking.PaymentStatus, &paymentIntentID,
			&booking.TotalAmount, &paidAt, &booking.CreatedAt, &booking.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		if paymentIntentID.Valid {
			booking.PaymentIntentID = &paymentIntentID.String
		}
		if paidAt.Valid {
			booking.PaidAt = &paidAt.Time
		}

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
