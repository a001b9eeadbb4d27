package entities

import "time"

// User represents a registered account in the database
type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"` // Don't expose password hash in JSON
	ResetToken          *string    `json:"-"` // Set only while a password reset is pending
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
