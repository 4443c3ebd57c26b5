package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/config"
	"github.com/ch4-lumia/lumia-backend/internal/server/delivery"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/repomanager"
)

// NewMessage is the outcome of a scheduled-message check.
type NewMessage struct {
	HasNewMessage bool
	Question      *models.Question
}

// MessageService composes the delivery-eligibility engine with the settings
// and question stores: it decides whether a user should be handed a new
// scheduled prompt right now and, if so, which one.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	engineCfg   delivery.Config
}

// NewMessageService constructs a MessageService using server config for the
// engine knobs.
func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		engineCfg: delivery.Config{
			RearmInterval: cfg.RearmInterval,
			Location:      cfg.Location(),
		},
	}
}

// CheckDelivery evaluates the user's policy at the current time. When the
// engine says deliver, a random active scheduled-message question is picked
// and last_delivered_at is advanced in the same transaction. An empty
// question pool turns the decision back into "no message" and the timestamp
// stays put, so the user is re-eligible as soon as the pool is refilled.
func (s *MessageService) CheckDelivery(ctx context.Context, userID string) (*NewMessage, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	policy, err := s.loadOrDefaultPolicy(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := delivery.Decide(policy, time.Now(), s.engineCfg)
	if !decision.Deliver {
		return &NewMessage{}, nil
	}

	question, err := s.repomanager.Questions(s.db).PickActive(ctx, models.QuestionScheduledMessage)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &NewMessage{}, nil
		}
		return nil, fmt.Errorf("error picking question: %w", err)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Settings(tx).SetLastDeliveredAt(ctx, userID, *decision.NewLastDeliveredAt)
	}); err != nil {
		return nil, fmt.Errorf("error advancing delivery timestamp: %w", err)
	}

	return &NewMessage{HasNewMessage: true, Question: question}, nil
}

func (s *MessageService) loadOrDefaultPolicy(ctx context.Context, userID string) (*models.NotificationPolicy, error) {
	repo := s.repomanager.Settings(s.db)
	policy, err := repo.Get(ctx, userID)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	// Missing settings row: recreate defaults instead of failing the check.
	policy = models.DefaultNotificationPolicy(userID)
	if err := repo.Upsert(ctx, policy); err != nil {
		return nil, fmt.Errorf("error creating default settings: %w", err)
	}
	return policy, nil
}
