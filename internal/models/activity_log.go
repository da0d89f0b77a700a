package models

import (
	"time"
)

// Activity action tags recorded in the audit trail.
const (
	ActionSwapCreated     = "swap_created"
	ActionSwapAccepted    = "swap_accepted"
	ActionSwapRejected    = "swap_rejected"
	ActionSwapCancelled   = "swap_cancelled"
	ActionUserBanned      = "user_banned"
	ActionUserUnbanned    = "user_unbanned"
	ActionPlatformMessage = "platform_message_sent"
)

// ActivityLog is an append-only audit record of a state-changing action.
// Entries are never updated or deleted.
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_activity_logs_user" json:"user_id"`
	Action       string    `gorm:"not null;index:idx_activity_logs_action" json:"action"`
	TargetUserID *uint     `json:"target_user_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	User       User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TargetUser *User `gorm:"foreignKey:TargetUserID" json:"target_user,omitempty"`
}

// TableName specifies the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}
