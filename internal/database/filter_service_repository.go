package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// FilterServiceRepository handles database operations for filter services
type FilterServiceRepository struct {
	db DB
}

// NewFilterServiceRepository creates a new FilterServiceRepository
func NewFilterServiceRepository(db DB) *FilterServiceRepository {
	return &FilterServiceRepository{db: db}
}

// Create adds a filter service
func (r *FilterServiceRepository) Create(service *models.FilterService) error {
	query := `
		INSERT INTO filter_services (id, name, icon, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		service.ID, service.Name, service.Icon, service.SortOrder, service.IsActive,
	).Scan(&service.CreatedAt)
}

// List retrieves filter services in display order. When activeOnly is set,
// disabled services are excluded (the public site view).
func (r *FilterServiceRepository) List(activeOnly bool) ([]models.FilterService, error) {
	query := `
		SELECT id, name, icon, sort_order, is_active, created_at
		FROM filter_services
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.FilterService{}
	for rows.Next() {
		var s models.FilterService
		var icon sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &icon, &s.SortOrder, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		if icon.Valid {
			s.Icon = &icon.String
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

// GetByID retrieves a filter service by ID
func (r *FilterServiceRepository) GetByID(serviceID uuid.UUID) (*models.FilterService, error) {
	query := `
		SELECT id, name, icon, sort_order, is_active, created_at
		FROM filter_services
		WHERE id = $1
	`

	var s models.FilterService
	var icon sql.NullString
	err := r.db.QueryRow(query, serviceID).
		Scan(&s.ID, &s.Name, &icon, &s.SortOrder, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if icon.Valid {
		s.Icon = &icon.String
	}

	return &s, nil
}

// Update updates a filter service
func (r *FilterServiceRepository) Update(service *models.FilterService) error {
	query := `
		UPDATE filter_services
		SET name = $2, icon = $3, sort_order = $4, is_active = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		service.ID, service.Name, service.Icon, service.SortOrder, service.IsActive,
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

// Delete removes a filter service and its listing links
func (r *FilterServiceRepository) Delete(serviceID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM filter_services WHERE id = $1`, serviceID)
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
