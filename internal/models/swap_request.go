package models

import (
	"time"
)

// SwapStatus represents the status of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates a request awaiting a decision by the recipient.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the recipient accepted the request.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the recipient rejected the request.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled indicates the sender withdrew the request.
	SwapStatusCancelled SwapStatus = "cancelled"
)

// Terminal reports whether no further transition is possible from the status.
func (s SwapStatus) Terminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected || s == SwapStatusCancelled
}

// SwapRequest is a proposal from one user to exchange a named skill for
// another named skill with a specific counterparty. Only the recipient may
// accept or reject a pending request; only the sender may cancel it.
type SwapRequest struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FromUserID   uint       `gorm:"not null;index:idx_swap_requests_from" json:"from_user_id"`
	ToUserID     uint       `gorm:"not null;index:idx_swap_requests_to" json:"to_user_id"`
	SkillOffered string     `gorm:"not null" json:"skill_offered"`
	SkillWanted  string     `gorm:"not null" json:"skill_wanted"`
	Status       SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swap_requests_status" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}
