package services

import (
	"database/sql"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
)

// mockDB adapts sqlmock's *sql.DB to the database.DB interface
type mockDB struct {
	db *sql.DB
}

func (m *mockDB) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDB) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDB) Close() error {
	return m.db.Close()
}

func (m *mockDB) Ping() error {
	return m.db.Ping()
}

// fakeNotifier records notification calls and can be told to fail
type fakeNotifier struct {
	approved    int
	denied      int
	cancelled   int
	rescheduled int
	contacts    int
	err         error
}

func (f *fakeNotifier) BookingApproved(*models.Booking) error    { f.approved++; return f.err }
func (f *fakeNotifier) BookingDenied(*models.Booking) error      { f.denied++; return f.err }
func (f *fakeNotifier) BookingCancelled(*models.Booking) error   { f.cancelled++; return f.err }
func (f *fakeNotifier) BookingRescheduled(*models.Booking) error { f.rescheduled++; return f.err }
func (f *fakeNotifier) ContactReceived(*models.Contact) error    { f.contacts++; return f.err }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newBookingService(t *testing.T, notifier BookingNotifier) (*BookingService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &mockDB{db: db}
	return NewBookingService(
		database.NewBookingRepository(wrapped),
		database.NewListingRepository(wrapped),
		notifier,
		testLogger(),
	), mock
}

func listingRow(id uuid.UUID, title string, price float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "location", "property_type",
		"price_per_day", "max_guests", "bedrooms", "bathrooms",
		"url", "is_active", "created_at", "updated_at",
	}).AddRow(id, title, nil, nil, nil, price, nil, nil, nil, nil, true, now, now)
}

func bookingRow(id, listingID uuid.UUID, status, paymentStatus string, total float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "listing_id", "title", "name", "email", "checkin", "checkout",
		"status", "payment_status", "payment_intent_id", "total_amount",
		"paid_at", "created_at", "updated_at",
	}).AddRow(
		id, listingID, "Beach Villa", "Jane Guest", "jane@example.com",
		now.AddDate(0, 0, 7), now.AddDate(0, 0, 10),
		status, paymentStatus, nil, total, nil, now, now,
	)
}

func TestCreateBookingService(t *testing.T) {
	t.Run("Snapshots Current Price", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})
		listingID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnRows(listingRow(listingID, "Beach Villa", 150))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		booking, err := svc.CreateBooking(&models.CreateBookingRequest{
			ListingID:    listingID.String(),
			Name:         "Jane Guest",
			Email:        "jane@example.com",
			CheckinDate:  "2024-06-01",
			CheckoutDate: "2024-06-04",
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, booking.PaymentStatus)
		assert.Equal(t, 450.0, booking.TotalAmount) // 3 nights at 150

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Partial Day Bills Extra Night", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})
		listingID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnRows(listingRow(listingID, "Beach Villa", 100))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		booking, err := svc.CreateBooking(&models.CreateBookingRequest{
			ListingID:    listingID.String(),
			Name:         "Jane Guest",
			Email:        "jane@example.com",
			CheckinDate:  "2024-06-01",
			CheckinTime:  "14:00",
			CheckoutDate: "2024-06-03",
			CheckoutTime: "17:00",
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, booking.TotalAmount) // 2 days 3 hours bills 3 nights

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Checkout Before Checkin", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})

		_, err := svc.CreateBooking(&models.CreateBookingRequest{
			ListingID:    uuid.New().String(),
			Name:         "Jane Guest",
			Email:        "jane@example.com",
			CheckinDate:  "2024-06-04",
			CheckoutDate: "2024-06-01",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed Date", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})

		_, err := svc.CreateBooking(&models.CreateBookingRequest{
			ListingID:    uuid.New().String(),
			Name:         "Jane Guest",
			Email:        "jane@example.com",
			CheckinDate:  "June 1st",
			CheckoutDate: "2024-06-04",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Listing Not Found", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})
		listingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnError(sql.ErrNoRows)

		_, err := svc.CreateBooking(&models.CreateBookingRequest{
			ListingID:    listingID.String(),
			Name:         "Jane Guest",
			Email:        "jane@example.com",
			CheckinDate:  "2024-06-01",
			CheckoutDate: "2024-06-04",
		})
		assert.ErrorIs(t, err, ErrListingNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBookingStatusService(t *testing.T) {
	t.Run("Deny From Approved", func(t *testing.T) {
		// Transitions are unguarded: denying an already-approved booking works
		notifier := &fakeNotifier{}
		svc, mock := newBookingService(t, notifier)
		bookingID := uuid.New()
		listingID := uuid.New()

		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, models.BookingStatusDenied).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(bookingID).
			WillReturnRows(bookingRow(bookingID, listingID, "denied", "unpaid", 450))

		booking, err := svc.Deny(bookingID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusDenied, booking.Status)
		assert.Equal(t, 1, notifier.denied)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Status Value", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})

		_, err := svc.UpdateStatus(uuid.New(), models.BookingStatus("archived"))
		assert.ErrorIs(t, err, ErrInvalidInput)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Not Found", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})
		bookingID := uuid.New()

		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, models.BookingStatusApproved).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.Approve(bookingID)
		assert.ErrorIs(t, err, ErrBookingNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Notification Failure Does Not Revert", func(t *testing.T) {
		notifier := &fakeNotifier{err: fmt.Errorf("smtp unreachable")}
		svc, mock := newBookingService(t, notifier)
		bookingID := uuid.New()
		listingID := uuid.New()

		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, models.BookingStatusApproved).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(bookingID).
			WillReturnRows(bookingRow(bookingID, listingID, "approved", "unpaid", 450))

		booking, err := svc.Approve(bookingID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusApproved, booking.Status)
		assert.Equal(t, 1, notifier.approved)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRescheduleBooking(t *testing.T) {
	t.Run("Recomputes Total From Current Rate", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc, mock := newBookingService(t, notifier)
		bookingID := uuid.New()
		listingID := uuid.New()

		checkin := day("2024-07-01 00:00")
		checkout := day("2024-07-05 00:00")

		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(bookingID).
			WillReturnRows(bookingRow(bookingID, listingID, "approved", "unpaid", 450))
		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnRows(listingRow(listingID, "Beach Villa", 200))
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, checkin, checkout, 800.0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(bookingID).
			WillReturnRows(bookingRow(bookingID, listingID, "approved", "unpaid", 800))

		booking, err := svc.Reschedule(bookingID, checkin, checkout)
		require.NoError(t, err)
		assert.Equal(t, 800.0, booking.TotalAmount)
		assert.Equal(t, 1, notifier.rescheduled)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Date Order", func(t *testing.T) {
		svc, mock := newBookingService(t, &fakeNotifier{})

		_, err := svc.Reschedule(uuid.New(), day("2024-07-05 00:00"), day("2024-07-01 00:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
