// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultProfilePhoto is used when a user registers without uploading a photo.
const DefaultProfilePhoto = "https://avatar.iran.liara.run/public"

// User represents a member of the skill-swap platform.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Location      string    `json:"location"`
	ProfilePhoto  string    `json:"profile_photo"`
	SkillsOffered []string  `gorm:"serializer:json" json:"skills_offered"`
	SkillsWanted  []string  `gorm:"serializer:json" json:"skills_wanted"`
	Availability  string    `json:"availability"`
	IsPublic      bool      `gorm:"default:true" json:"is_public"`
	IsAdmin       bool      `gorm:"default:false" json:"is_admin"`
	IsBanned      bool      `gorm:"default:false" json:"is_banned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PublicUser is the subset of user fields safe to attach to other resources.
type PublicUser struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// Public returns the user's public identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
	}
}
