// Package settings declares the repository contract for per-user
// notification policies.
package settings

import (
	"context"
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// Repository stores one NotificationPolicy row per user.
type Repository interface {
	// Get returns the policy for userID. Absent rows yield
	// common.ErrNotFound.
	Get(ctx context.Context, userID string) (*models.NotificationPolicy, error)

	// Upsert inserts or replaces the user-editable fields of the policy.
	// The stored last_delivered_at is preserved on update; it is owned by
	// the message service, not the settings editor.
	Upsert(ctx context.Context, policy *models.NotificationPolicy) error

	// SetLastDeliveredAt advances the delivery timestamp. The update is
	// conditional so the stored value never moves backwards.
	SetLastDeliveredAt(ctx context.Context, userID string, at time.Time) error
}
