package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Manowcrm/Helnay/internal/models"
)

// ActivityLogRepository handles database operations for the activity log
type ActivityLogRepository struct {
	db DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Insert appends an activity log entry
func (r *ActivityLogRepository) Insert(entry *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (
			id, user_id, user_email, action, detail, target_id,
			ip_address, user_agent, browser, platform
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	return r.db.QueryRow(
		query,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Detail,
		entry.TargetID, entry.IPAddress, entry.UserAgent, entry.Browser, entry.Platform,
	).Scan(&entry.CreatedAt)
}

// List retrieves activity log entries matching the filter, newest first
func (r *ActivityLogRepository) List(filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	query := `
		SELECT id, user_id, user_email, action, detail, target_id,
			   ip_address, user_agent, browser, platform, created_at
		FROM activity_logs
		WHERE 1=1
	`

	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, filter.Action)
		argIdx++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.Since)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActivityLog{}
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// Stats summarizes activity volume for the dashboard
func (r *ActivityLogRepository) Stats() (*models.ActivityStats, error) {
	stats := &models.ActivityStats{ByAction: map[string]int{}}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM activity_logs`).Scan(&stats.TotalActions)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(`
		SELECT COUNT(*) FROM activity_logs
		WHERE created_at >= CURRENT_DATE
	`).Scan(&stats.ActionsToday)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(`
		SELECT COUNT(DISTINCT user_id) FROM activity_logs
		WHERE created_at >= CURRENT_DATE AND user_id IS NOT NULL
	`).Scan(&stats.ActiveAdmins)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT action, COUNT(*)
		FROM activity_logs
		GROUP BY action
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		stats.ByAction[action] = count
	}

	return stats, rows.Err()
}

// scanEntry scans a single activity log entry
func (r *ActivityLogRepository) scanEntry(row scanner) (*models.ActivityLog, error) {
	entry := &models.ActivityLog{}
	var userID sql.NullString
	var userEmail sql.NullString
	var detail sql.NullString
	var targetID sql.NullString
	var ipAddress sql.NullString
	var userAgent sql.NullString
	var browser sql.NullString
	var platform sql.NullString

	err := row.Scan(
		&entry.ID, &userID, &userEmail, &entry.Action, &detail, &targetID,
		&ipAddress, &userAgent, &browser, &platform, &entry.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	// Convert sql.Null* types
	if userID.Valid {
		id, err := uuid.Parse(userID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		entry.UserID = &id
	}
	if userEmail.Valid {
		entry.UserEmail = &userEmail.String
	}
	if detail.Valid {
		entry.Detail = &detail.String
	}
	if targetID.Valid {
		id, err := uuid.Parse(targetID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid target_id: %w", err)
		}
		entry.TargetID = &id
	}
	if ipAddress.Valid {
		entry.IPAddress = &ipAddress.String
	}
	if userAgent.Valid {
		entry.UserAgent = &userAgent.String
	}
	if browser.Valid {
		entry.Browser = &browser.String
	}
	if platform.Valid {
		entry.Platform = &platform.String
	}

	return entry, nil
}
