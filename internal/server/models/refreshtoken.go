package models

import "time"

// RefreshToken is the single stored refresh credential of a user. UserID is
// unique in storage: issuing a new refresh token replaces the previous row,
// so at most one refresh token per user is ever live.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
