package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// BrowseCategoryRepository handles database operations for browse categories
type BrowseCategoryRepository struct {
	db DB
}

// NewBrowseCategoryRepository creates a new BrowseCategoryRepository
func NewBrowseCategoryRepository(db DB) *BrowseCategoryRepository {
	return &BrowseCategoryRepository{db: db}
}

// Create adds a browse category
func (r *BrowseCategoryRepository) Create(category *models.BrowseCategory) error {
	query := `
		INSERT INTO browse_categories (id, label, image_url, query, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		category.ID, category.Label, category.ImageURL, category.Query,
		category.SortOrder, category.IsActive,
	).Scan(&category.CreatedAt)
}

// List retrieves browse categories in display order. When activeOnly is set,
// disabled categories are excluded.
func (r *BrowseCategoryRepository) List(activeOnly bool) ([]models.BrowseCategory, error) {
	query := `
		SELECT id, label, image_url, query, sort_order, is_active, created_at
		FROM browse_categories
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order, label`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.BrowseCategory{}
	for rows.Next() {
		var c models.BrowseCategory
		var imageURL sql.NullString
		var searchQuery sql.NullString
		if err := rows.Scan(&c.ID, &c.Label, &imageURL, &searchQuery, &c.SortOrder, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			c.ImageURL = &imageURL.String
		}
		if searchQuery.Valid {
			c.Query = &searchQuery.String
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetByID retrieves a browse category by ID
func (r *BrowseCategoryRepository) GetByID(categoryID uuid.UUID) (*models.BrowseCategory, error) {
	query := `
		SELECT id, label, image_url, query, sort_order, is_active, created_at
		FROM browse_categories
		WHERE id = $1
	`

	var c models.BrowseCategory
	var imageURL sql.NullString
	var searchQuery sql.NullString
	err := r.db.QueryRow(query, categoryID).
		Scan(&c.ID, &c.Label, &imageURL, &searchQuery, &c.SortOrder, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	if searchQuery.Valid {
		c.Query = &searchQuery.String
	}

	return &c, nil
}

// Update updates a browse category
func (r *BrowseCategoryRepository) Update(category *models.BrowseCategory) error {
	query := `
		UPDATE browse_categories
		SET label = $2, image_url = $3, query = $4, sort_order = $5, is_active = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		category.ID, category.Label, category.ImageURL, category.Query,
		category.SortOrder, category.IsActive,
	)
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

// Delete removes a browse category
func (r *BrowseCategoryRepository) Delete(categoryID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM browse_categories WHERE id = $1`, categoryID)
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
