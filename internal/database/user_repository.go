package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `
	id, email, password_hash, name, role, admin_level,
	created_by, is_active, last_login, created_at`

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, role,
			admin_level, created_by, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.AdminLevel, user.CreatedBy, user.IsActive,
	).Scan(&user.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	return r.scanUser(r.db.QueryRow(query, email))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.QueryRow(query, userID))
}

// List retrieves all back-office accounts, newest first
func (r *UserRepository) List() ([]models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE role = 'admin'
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// UpdateActive toggles a user's active flag
func (r *UserRepository) UpdateActive(userID uuid.UUID, isActive bool) error {
	result, err := r.db.Exec(`UPDATE users SET is_active = $2 WHERE id = $1`, userID, isActive)
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

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(userID uuid.UUID) error {
	_, err := r.db.Exec(`UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID uuid.UUID, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash)
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

// scanUser scans a single user
func (r *UserRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var adminLevel sql.NullString
	var createdBy sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&adminLevel, &createdBy, &user.IsActive, &lastLogin, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Convert sql.Null* types
	if adminLevel.Valid {
		level := models.AdminLevel(adminLevel.String)
		user.AdminLevel = &level
	}
	if createdBy.Valid {
		id, err := uuid.Parse(createdBy.String)
		if err != nil {
			return nil, fmt.Errorf("invalid created_by: %w", err)
		}
		user.CreatedBy = &id
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}
