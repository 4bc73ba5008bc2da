package database

import (
	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// ContactRepository handles database operations for the contacts table
type ContactRepository struct {
	db DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a contact form submission
func (r *ContactRepository) Create(contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		contact.ID, contact.Name, contact.Email, contact.Subject, contact.Message,
	).Scan(&contact.CreatedAt)
}

// List retrieves contact messages, newest first
func (r *ContactRepository) List(limit, offset int) ([]models.Contact, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		var subject *string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &subject, &c.Message, &c.IsRead, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Subject = subject
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// MarkRead flags a contact message as read
func (r *ContactRepository) MarkRead(contactID uuid.UUID) error {
	result, err := r.db.Exec(`UPDATE contacts SET is_read = TRUE WHERE id = $1`, contactID)
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

// Delete removes a contact message
func (r *ContactRepository) Delete(contactID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = $1`, contactID)
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

// CountUnread returns how many contact messages are awaiting review
func (r *ContactRepository) CountUnread() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE is_read = FALSE`).Scan(&count)
	return count, err
}
