// Package users declares the repository contract for account records.
package users

import (
	"context"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// Repository defines storage operations for users.
type Repository interface {
	// Create inserts a new user. A duplicate login yields
	// common.ErrLoginAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByLogin looks up a user by the login presented at authentication.
	// Absent users yield common.ErrNotFound.
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	// GetByID looks up a user by primary key. Absent users yield
	// common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
