package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manowcrm/Helnay/internal/models"
)

func listingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "location", "property_type",
		"price_per_day", "max_guests", "bedrooms", "bathrooms",
		"url", "is_active", "created_at", "updated_at",
	})
}

func TestGetListingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewListingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		listingID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnRows(listingRows().AddRow(
				listingID, "Beach Villa", "Ocean views", "Malibu", "villa",
				150.0, 6, 3, 2, "https://img.example.com/1.jpg", true, now, now,
			))

		listing, err := repo.GetByID(listingID)
		require.NoError(t, err)
		assert.Equal(t, listingID, listing.ID)
		assert.Equal(t, "Beach Villa", listing.Title)
		assert.Equal(t, 150.0, listing.PricePerDay)
		require.NotNil(t, listing.MaxGuests)
		assert.Equal(t, 6, *listing.MaxGuests)
		require.NotNil(t, listing.CoverImage)
		assert.Equal(t, "https://img.example.com/1.jpg", *listing.CoverImage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		listingID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnError(sql.ErrNoRows)

		listing, err := repo.GetByID(listingID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, listing)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Null Optional Fields", func(t *testing.T) {
		listingID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs(listingID).
			WillReturnRows(listingRows().AddRow(
				listingID, "Cabin", nil, nil, nil,
				75.0, nil, nil, nil, nil, true, now, now,
			))

		listing, err := repo.GetByID(listingID)
		require.NoError(t, err)
		assert.Nil(t, listing.Description)
		assert.Nil(t, listing.Location)
		assert.Nil(t, listing.MaxGuests)
		assert.Nil(t, listing.CoverImage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchListings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewListingRepository(mockDB)

	t.Run("No Filter", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WillReturnRows(listingRows().
				AddRow(uuid.New(), "Beach Villa", nil, "Malibu", "villa",
					150.0, 6, 3, 2, nil, true, now, now).
				AddRow(uuid.New(), "City Loft", nil, "Austin", "apartment",
					95.0, 2, 1, 1, nil, true, now, now))

		listings, err := repo.Search(models.ListingSearchFilter{})
		require.NoError(t, err)
		assert.Len(t, listings, 2)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Location And Price Range", func(t *testing.T) {
		now := time.Now()
		minPrice := 50.0
		maxPrice := 200.0

		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs("%Malibu%", minPrice, maxPrice).
			WillReturnRows(listingRows().AddRow(
				uuid.New(), "Beach Villa", nil, "Malibu", "villa",
				150.0, 6, 3, 2, nil, true, now, now,
			))

		listings, err := repo.Search(models.ListingSearchFilter{
			Location: "Malibu",
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
		})
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "Beach Villa", listings[0].Title)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM listings l`).
			WithArgs("%nowhere%").
			WillReturnRows(listingRows())

		listings, err := repo.Search(models.ListingSearchFilter{Location: "nowhere"})
		require.NoError(t, err)
		assert.Empty(t, listings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewListingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		listingID := uuid.New()

		mock.ExpectExec(`DELETE FROM listings`).
			WithArgs(listingID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(listingID)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		listingID := uuid.New()

		mock.ExpectExec(`DELETE FROM listings`).
			WithArgs(listingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(listingID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
