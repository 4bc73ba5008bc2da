package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Manowcrm/Helnay/internal/models"
)

// ListingRepository handles database operations for listings and their
// images and services
type ListingRepository struct {
	db DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `
	l.id, l.title, l.description, l.location, l.property_type,
	l.price_per_day, l.max_guests, l.bedrooms, l.bathrooms,
	(SELECT li.url FROM listing_images li
	 WHERE li.listing_id = l.id
	 ORDER BY li.sort_order, li.created_at LIMIT 1),
	l.is_active, l.created_at, l.updated_at`

// Create creates a new listing
func (r *ListingRepository) Create(listing *models.Listing) error {
	query := `
		INSERT INTO listings (
			id, title, description, location, property_type,
			price_per_day, max_guests, bedrooms, bathrooms, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING created_at, updated_at
	`

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		listing.ID, listing.Title, listing.Description, listing.Location,
		listing.PropertyType, listing.PricePerDay, listing.MaxGuests,
		listing.Bedrooms, listing.Bathrooms, listing.IsActive,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (r *ListingRepository) GetByID(listingID uuid.UUID) (*models.Listing, error) {
	query := `
		SELECT` + listingColumns + `
		FROM listings l
		WHERE l.id = $1
	`

	return r.scanListing(r.db.QueryRow(query, listingID))
}

// GetActiveByID retrieves a listing by ID only if it is active.
// The public site uses this so deactivated listings disappear.
func (r *ListingRepository) GetActiveByID(listingID uuid.UUID) (*models.Listing, error) {
	query := `
		SELECT` + listingColumns + `
		FROM listings l
		WHERE l.id = $1 AND l.is_active = TRUE
	`

	return r.scanListing(r.db.QueryRow(query, listingID))
}

// Search retrieves active listings matching the filter, newest first
func (r *ListingRepository) Search(filter models.ListingSearchFilter) ([]models.Listing, error) {
	query := `
		SELECT` + listingColumns + `
		FROM listings l
		WHERE l.is_active = TRUE
	`

	args := []interface{}{}
	argIdx := 1

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (l.title ILIKE $%d OR l.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}

	if filter.Location != "" {
		query += fmt.Sprintf(" AND l.location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	if filter.PropertyType != "" {
		query += fmt.Sprintf(" AND l.property_type = $%d", argIdx)
		args = append(args, filter.PropertyType)
		argIdx++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND l.price_per_day >= $%d", argIdx)
		args = append(args, *filter.MinPrice)
		argIdx++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND l.price_per_day <= $%d", argIdx)
		args = append(args, *filter.MaxPrice)
		argIdx++
	}

	if len(filter.Services) > 0 {
		// Listing must offer every requested service
		query += fmt.Sprintf(`
			AND (SELECT COUNT(DISTINCT fs.name)
				 FROM listing_services ls
				 JOIN filter_services fs ON fs.id = ls.service_id
				 WHERE ls.listing_id = l.id AND fs.name = ANY($%d)) = $%d`, argIdx, argIdx+1)
		args = append(args, pq.Array(filter.Services), len(filter.Services))
		argIdx += 2
	}

	query += " ORDER BY l.created_at DESC"

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

	return r.scanListings(rows)
}

// Update updates a listing's mutable fields
func (r *ListingRepository) Update(listing *models.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, location = $4, property_type = $5,
			price_per_day = $6, max_guests = $7, bedrooms = $8, bathrooms = $9,
			is_active = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		listing.ID, listing.Title, listing.Description, listing.Location,
		listing.PropertyType, listing.PricePerDay, listing.MaxGuests,
		listing.Bedrooms, listing.Bathrooms, listing.IsActive,
	).Scan(&listing.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// Delete removes a listing. Images and service links cascade in the schema.
func (r *ListingRepository) Delete(listingID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM listings WHERE id = $1`, listingID)
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

// AddImage appends an image to a listing's gallery
func (r *ListingRepository) AddImage(image *models.ListingImage) error {
	query := `
		INSERT INTO listing_images (id, listing_id, url, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}

	return r.db.QueryRow(query, image.ID, image.ListingID, image.URL, image.SortOrder).
		Scan(&image.CreatedAt)
}

// GetImages retrieves a listing's gallery in display order
func (r *ListingRepository) GetImages(listingID uuid.UUID) ([]models.ListingImage, error) {
	query := `
		SELECT id, listing_id, url, sort_order, created_at
		FROM listing_images
		WHERE listing_id = $1
		ORDER BY sort_order, created_at
	`

	rows, err := r.db.Query(query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ListingImage{}
	for rows.Next() {
		var img models.ListingImage
		if err := rows.Scan(&img.ID, &img.ListingID, &img.URL, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// ReplaceImages swaps a listing's gallery for the given URLs in order
func (r *ListingRepository) ReplaceImages(listingID uuid.UUID, urls []string) error {
	if _, err := r.db.Exec(`DELETE FROM listing_images WHERE listing_id = $1`, listingID); err != nil {
		return err
	}

	for i, url := range urls {
		img := models.ListingImage{ListingID: listingID, URL: url, SortOrder: i}
		if err := r.AddImage(&img); err != nil {
			return err
		}
	}

	return nil
}

// GetServices retrieves the service names linked to a listing
func (r *ListingRepository) GetServices(listingID uuid.UUID) ([]string, error) {
	query := `
		SELECT fs.name
		FROM listing_services ls
		JOIN filter_services fs ON fs.id = ls.service_id
		WHERE ls.listing_id = $1
		ORDER BY fs.sort_order, fs.name
	`

	rows, err := r.db.Query(query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		services = append(services, name)
	}

	return services, rows.Err()
}

// SetServices replaces a listing's service links with the named services
func (r *ListingRepository) SetServices(listingID uuid.UUID, serviceNames []string) error {
	if _, err := r.db.Exec(`DELETE FROM listing_services WHERE listing_id = $1`, listingID); err != nil {
		return err
	}

	if len(serviceNames) == 0 {
		return nil
	}

	query := `
		INSERT INTO listing_services (listing_id, service_id)
		SELECT $1, fs.id FROM filter_services fs WHERE fs.name = ANY($2)
	`

	_, err := r.db.Exec(query, listingID, pq.Array(serviceNames))
	return err
}

// CountActive returns the number of active listings
func (r *ListingRepository) CountActive() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM listings WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

// scanListing scans a single listing
func (r *ListingRepository) scanListing(row scanner) (*models.Listing, error) {
	listing := &models.Listing{}
	var description sql.NullString
	var location sql.NullString
	var propertyType sql.NullString
	var maxGuests sql.NullInt64
	var bedrooms sql.NullInt64
	var bathrooms sql.NullInt64
	var coverImage sql.NullString

	err := row.Scan(
		&listing.ID, &listing.Title, &description, &location, &propertyType,
		&listing.PricePerDay, &maxGuests, &bedrooms, &bathrooms,
		&coverImage, &listing.IsActive, &listing.CreatedAt, &listing.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Convert sql.Null* types
	if description.Valid {
		listing.Description = &description.String
	}
	if location.Valid {
		listing.Location = &location.String
	}
	if propertyType.Valid {
		listing.PropertyType = &propertyType.String
	}
	if maxGuests.Valid {
		guests := int(maxGuests.Int64)
		listing.MaxGuests = &guests
	}
	if bedrooms.Valid {
		n := int(bedrooms.Int64)
		listing.Bedrooms = &n
	}
	if bathrooms.Valid {
		n := int(bathrooms.Int64)
		listing.Bathrooms = &n
	}
	if coverImage.Valid {
		listing.CoverImage = &coverImage.String
	}

	return listing, nil
}

// scanListings scans multiple listings from rows
func (r *ListingRepository) scanListings(rows *sql.Rows) ([]models.Listing, error) {
	listings := []models.Listing{}

	for rows.Next() {
		var listing models.Listing
		var description sql.NullString
		var location sql.NullString
		var propertyType sql.NullString
		var maxGuests sql.NullInt64
		var bedrooms sql.NullInt64
		var bathrooms sql.NullInt64
		var coverImage sql.NullString

		err := rows.Scan(
			&listing.ID, &listing.Title, &description, &location, &propertyType,
			&listing.PricePerDay, &maxGuests, &bedrooms, &bathrooms,
			&coverImage, &listing.IsActive, &listing.CreatedAt, &listing.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		if description.Valid {
			listing.Description = &description.String
		}
		if location.Valid {
			listing.Location = &location.String
		}
		if propertyType.Valid {
			listing.PropertyType = &propertyType.String
		}
		if maxGuests.Valid {
			guests := int(maxGuests.Int64)
			listing.MaxGuests = &guests
		}
		if bedrooms.Valid {
			n := int(bedrooms.Int64)
			listing.Bedrooms = &n
		}
		if bathrooms.Valid {
			n := int(bathrooms.Int64)
			listing.Bathrooms = &n
		}
		if coverImage.Valid {
			listing.CoverImage = &coverImage.String
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}
