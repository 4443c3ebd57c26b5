package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/repomanager"
	"github.com/ch4-lumia/lumia-backend/internal/timex"
)

// SettingsService reads and updates a user's notification policy.
type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(db *sql.DB, m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{db: db, repomanager: m}
}

// Get returns the user's notification policy. A missing settings row is
// recreated with defaults rather than reported as an error, so an account
// with broken settings keeps working.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.NotificationPolicy, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	repo := s.repomanager.Settings(s.db)
	policy, err := repo.Get(ctx, userID)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	policy = models.DefaultNotificationPolicy(userID)
	if err := repo.Upsert(ctx, policy); err != nil {
		return nil, fmt.Errorf("error creating default settings: %w", err)
	}
	return policy, nil
}

// SettingsUpdate carries the user-editable policy fields.
type SettingsUpdate struct {
	IntervalMode     models.IntervalMode
	NotificationTime *timex.TimeOfDay
	InAppEnabled     bool
	PushEnabled      bool
}

// Update stores the user-editable fields and returns the resulting policy.
// LastDeliveredAt is owned by the message service and is never touched here.
func (s *SettingsService) Update(ctx context.Context, userID string, upd SettingsUpdate) (*models.NotificationPolicy, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	policy := &models.NotificationPolicy{
		UserID:           userID,
		IntervalMode:     upd.IntervalMode,
		NotificationTime: upd.NotificationTime,
		InAppEnabled:     upd.InAppEnabled,
		PushEnabled:      upd.PushEnabled,
	}
	if err := s.repomanager.Settings(s.db).Upsert(ctx, policy); err != nil {
		return nil, fmt.Errorf("error saving settings: %w", err)
	}
	return s.repomanager.Settings(s.db).Get(ctx, userID)
}
