package models

import (
	"time"
)

// Feedback is a rating left by one party of an accepted swap for the other.
// The recipient is always the counterparty of the swap, derived server-side,
// and each party may leave at most one feedback per swap.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SwapID     uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_author" json:"swap_id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_author" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;index:idx_feedback_to" json:"to_user_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Swap     SwapRequest `gorm:"foreignKey:SwapID" json:"swap,omitempty"`
	FromUser User        `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User        `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedback"
}
