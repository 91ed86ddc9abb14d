package domain

import "time"

// User represents a registered account on the platform.
type User struct {
	ID                int64
	FullName          string
	Email             string
	PasswordHash      string
	IsVerified        bool
	IsAdmin           bool
	VerificationToken string
	CreatedAt         time.Time
}
