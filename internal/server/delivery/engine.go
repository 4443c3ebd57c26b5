// Package delivery decides whether a scheduled message should be surfaced
// for a user right now. The decision is a pure function over the user's
// notification policy and the evaluation time: no clock reads, no I/O.
package delivery

import (
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// DefaultRearmInterval throttles WHEN_APP_OPENS so reopening the app within
// a short window does not re-prompt the user.
const DefaultRearmInterval = 3 * time.Hour

// Config pins the environment-dependent knobs of the decision.
type Config struct {
	// RearmInterval is the WHEN_APP_OPENS cooldown. Zero means
	// DefaultRearmInterval.
	RearmInterval time.Duration

	// Location is the timezone in which "today at the configured time" is
	// evaluated for DAILY_SPECIFIC_TIME. Nil means the evaluation time's
	// own location.
	Location *time.Location
}

func (c Config) rearmInterval() time.Duration {
	if c.RearmInterval > 0 {
		return c.RearmInterval
	}
	return DefaultRearmInterval
}

// Decision is the outcome of an eligibility check. NewLastDeliveredAt is set
// only when Deliver is true; the caller persists it after a message was
// actually handed out.
type Decision struct {
	Deliver            bool
	NewLastDeliveredAt *time.Time
}

// Decide evaluates the policy at time now. Rules are checked in order and
// the first match wins; malformed or unknown policy data never delivers
// (fail closed) and never produces an error — a broken settings row must not
// lock a user out of the app.
func Decide(policy *models.NotificationPolicy, now time.Time, cfg Config) Decision {
	if policy == nil || !policy.InAppEnabled {
		return Decision{}
	}

	switch policy.IntervalMode {
	case models.IntervalNone:
		return Decision{}

	case models.IntervalWhenAppOpens:
		last := policy.LastDeliveredAt
		if last == nil || now.Sub(*last) >= cfg.rearmInterval() {
			return deliverAt(now)
		}
		return Decision{}

	case models.IntervalDailySpecificTime:
		if policy.NotificationTime == nil {
			return Decision{}
		}
		eval := now
		if cfg.Location != nil {
			eval = now.In(cfg.Location)
		}
		scheduled := policy.NotificationTime.At(eval)
		if eval.Before(scheduled) {
			return Decision{}
		}
		// At most one delivery per calendar day: the previous delivery must
		// predate today's scheduled instant.
		last := policy.LastDeliveredAt
		if last == nil || last.Before(scheduled) {
			return deliverAt(now)
		}
		return Decision{}

	default:
		// Unknown modes fail closed, never open.
		return Decision{}
	}
}

func deliverAt(now time.Time) Decision {
	at := now
	return Decision{Deliver: true, NewLastDeliveredAt: &at}
}
