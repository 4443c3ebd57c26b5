package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/timex"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.NotificationPolicy, error) {
	query := `
		SELECT user_id, notification_interval, notification_time,
		       last_delivered_at, in_app_enabled, push_enabled, updated_at
		FROM user_settings
		WHERE user_id = $1
	`
	p := &models.NotificationPolicy{}
	var interval string
	var notificationTime sql.Null[timex.TimeOfDay]
	var lastDelivered sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &interval, &notificationTime, &lastDelivered,
		&p.InAppEnabled, &p.PushEnabled, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.IntervalMode = models.IntervalMode(interval)
	if notificationTime.Valid {
		t := notificationTime.V
		p.NotificationTime = &t
	}
	if lastDelivered.Valid {
		t := lastDelivered.Time
		p.LastDeliveredAt = &t
	}
	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, policy *models.NotificationPolicy) error {
	query := `
		INSERT INTO user_settings (user_id, notification_interval, notification_time, in_app_enabled, push_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE
		SET notification_interval = EXCLUDED.notification_interval,
		    notification_time = EXCLUDED.notification_time,
		    in_app_enabled = EXCLUDED.in_app_enabled,
		    push_enabled = EXCLUDED.push_enabled,
		    updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		policy.UserID, string(policy.IntervalMode), policy.NotificationTime,
		policy.InAppEnabled, policy.PushEnabled)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetLastDeliveredAt(ctx context.Context, userID string, at time.Time) error {
	// Guard keeps last_delivered_at monotonically non-decreasing.
	query := `
		UPDATE user_settings
		SET last_delivered_at = $2, updated_at = now()
		WHERE user_id = $1
		  AND (last_delivered_at IS NULL OR last_delivered_at <= $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
