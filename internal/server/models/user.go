// Package models contains the persisted entities of the Lumia backend.
package models

import "time"

// User is a registered account. Login is the user-chosen identifier presented
// at authentication; ID is the internal primary key.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	Name         string
	Email        string
	Role         string
	CreatedAt    time.Time
}
