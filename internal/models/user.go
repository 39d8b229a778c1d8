package models

import "time"

// User is the identity record behind every account. The refresh token is
// stored as a one-way digest next to its expiry; the two fields are always
// set or cleared together, never one without the other.
type User struct {
	ID                    string
	Email                 string
	Name                  string
	PasswordHash          []byte
	IsAdmin               bool
	RefreshTokenHash      *string
	RefreshTokenExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
