package services

import (
	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/Manowcrm/Helnay/internal/database"
	"github.com/Manowcrm/Helnay/internal/models"
)

// ActivityService records admin actions for the audit trail. Recording is
// best effort; a logging failure never fails the action being recorded.
type ActivityService struct {
	repo    *database.ActivityLogRepository
	logger  *logrus.Logger
	enabled bool
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo *database.ActivityLogRepository, enabled bool, logger *logrus.Logger) *ActivityService {
	return &ActivityService{
		repo:    repo,
		logger:  logger,
		enabled: enabled,
	}
}

// RecordParams describes one admin action to record
type RecordParams struct {
	UserID    *uuid.UUID
	UserEmail string
	Action    models.ActivityAction
	Detail    string
	TargetID  *uuid.UUID
	IPAddress string
	UserAgent string
}

// Record appends an entry to the activity log, parsing browser and platform
// out of the raw user agent string
func (s *ActivityService) Record(params RecordParams) {
	if !s.enabled {
		return
	}

	entry := &models.ActivityLog{
		UserID:   params.UserID,
		Action:   params.Action,
		TargetID: params.TargetID,
	}

	if params.UserEmail != "" {
		entry.UserEmail = &params.UserEmail
	}
	if params.Detail != "" {
		entry.Detail = &params.Detail
	}
	if params.IPAddress != "" {
		entry.IPAddress = &params.IPAddress
	}

	if params.UserAgent != "" {
		entry.UserAgent = &params.UserAgent

		ua := user_agent.New(params.UserAgent)
		browserName, browserVersion := ua.Browser()
		if browserName != "" {
			browser := browserName
			if browserVersion != "" {
				browser = browserName + " " + browserVersion
			}
			entry.Browser = &browser
		}
		if platform := ua.Platform(); platform != "" {
			entry.Platform = &platform
		}
	}

	if err := s.repo.Insert(entry); err != nil {
		s.logger.WithError(err).WithField("action", params.Action).
			Warn("Failed to record activity")
	}
}

// List retrieves activity log entries for the admin UI
func (s *ActivityService) List(filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	return s.repo.List(filter)
}

// Stats summarizes activity volume for the dashboard
func (s *ActivityService) Stats() (*models.ActivityStats, error) {
	return s.repo.Stats()
}
