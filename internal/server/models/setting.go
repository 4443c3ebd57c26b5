package models

import (
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/timex"
)

// IntervalMode selects when a scheduled message may be surfaced for a user.
type IntervalMode string

const (
	IntervalNone              IntervalMode = "NONE"
	IntervalWhenAppOpens      IntervalMode = "WHEN_APP_OPENS"
	IntervalDailySpecificTime IntervalMode = "DAILY_SPECIFIC_TIME"
)

// Known reports whether m is one of the recognized modes. Unknown modes are
// treated as "never deliver" by the eligibility engine.
func (m IntervalMode) Known() bool {
	switch m {
	case IntervalNone, IntervalWhenAppOpens, IntervalDailySpecificTime:
		return true
	}
	return false
}

// NotificationPolicy is the per-user settings record that drives scheduled
// message delivery. NotificationTime is required only for
// IntervalDailySpecificTime; the engine fails closed when it is missing.
// LastDeliveredAt is advanced by the message service only after a message was
// actually handed out, and never moves backwards.
type NotificationPolicy struct {
	UserID           string
	IntervalMode     IntervalMode
	NotificationTime *timex.TimeOfDay
	LastDeliveredAt  *time.Time
	InAppEnabled     bool
	PushEnabled      bool
	UpdatedAt        time.Time
}

// DefaultNotificationPolicy is the policy created for new accounts and as a
// fallback when a user's settings row is missing.
func DefaultNotificationPolicy(userID string) *NotificationPolicy {
	return &NotificationPolicy{
		UserID:       userID,
		IntervalMode: IntervalWhenAppOpens,
		InAppEnabled: true,
		PushEnabled:  true,
	}
}
