// Package refreshtokens declares the server-side repository contract for the
// stored refresh tokens of the authentication flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// Repository holds at most one active refresh-token row per user.
type Repository interface {
	// UpsertForUser stores token for userID, replacing any previously stored
	// token for that user in one atomic statement. This keeps the
	// one-refresh-token-per-user invariant even under concurrent logins.
	UpsertForUser(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error)

	// FindByToken looks up a row by its opaque token string. Absent rows
	// yield common.ErrNotFound.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// FindByUser returns the row stored for userID, if any. Absent rows
	// yield common.ErrNotFound.
	FindByUser(ctx context.Context, userID string) (*models.RefreshToken, error)

	// DeleteByUser removes the row stored for userID. Deleting when no row
	// exists is not an error.
	DeleteByUser(ctx context.Context, userID string) error

	// Delete removes a specific row. Deleting an already-removed row is not
	// an error.
	Delete(ctx context.Context, token *models.RefreshToken) error
}
