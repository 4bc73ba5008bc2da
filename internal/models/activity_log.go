package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction identifies what an admin did
type ActivityAction string

const (
	ActionLogin          ActivityAction = "LOGIN"
	ActionLogout         ActivityAction = "LOGOUT"
	ActionCreateListing  ActivityAction = "CREATE_LISTING"
	ActionUpdateListing  ActivityAction = "UPDATE_LISTING"
	ActionDeleteListing  ActivityAction = "DELETE_LISTING"
	ActionApproveBooking ActivityAction = "APPROVE_BOOKING"
	ActionDenyBooking    ActivityAction = "DENY_BOOKING"
	ActionCancelBooking  ActivityAction = "CANCEL_BOOKING"
	ActionUpdateBooking  ActivityAction = "UPDATE_BOOKING"
	ActionCreateUser     ActivityAction = "CREATE_USER"
	ActionUpdateUser     ActivityAction = "UPDATE_USER"
	ActionUpdateFilters  ActivityAction = "UPDATE_FILTERS"
)

// ActivityLog records one admin action for the audit trail
type ActivityLog struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	UserID     *uuid.UUID     `json:"user_id,omitempty" db:"user_id"`
	UserEmail  *string        `json:"user_email,omitempty" db:"user_email"`
	Action     ActivityAction `json:"action" db:"action"`
	Detail     *string        `json:"detail,omitempty" db:"detail"`
	TargetID   *uuid.UUID     `json:"target_id,omitempty" db:"target_id"`
	IPAddress  *string        `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string        `json:"user_agent,omitempty" db:"user_agent"`
	Browser    *string        `json:"browser,omitempty" db:"browser"`
	Platform   *string        `json:"platform,omitempty" db:"platform"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// ActivityLogFilter narrows activity log queries
type ActivityLogFilter struct {
	UserID *uuid.UUID
	Action ActivityAction
	Since  *time.Time
	Limit  int
	Offset int
}

// ActivityStats summarizes audit-trail volume for the dashboard
type ActivityStats struct {
	TotalActions  int            `json:"total_actions"`
	ActionsToday  int            `json:"actions_today"`
	ActiveAdmins  int            `json:"active_admins"`
	ByAction      map[string]int `json:"by_action"`
}
