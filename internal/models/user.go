// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User represents an account in the SocialSync dashboard.
//
// IsActive is a soft lock: deactivated accounts keep their rows but
// cannot log in until reactivated out-of-band. ProfileImage holds a
// path relative to the uploads directory, or "" when no photo is set.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Handle returns the display identifier derived from the local part of
// the user's email address.
func (u *User) Handle() string {
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
