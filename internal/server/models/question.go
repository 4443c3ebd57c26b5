package models

import "time"

// Question categories used by the message service.
const (
	QuestionScheduledMessage = "SCHEDULED_MESSAGE"
	QuestionDailyMood        = "DAILY_MOOD"
)

// Question is a prompt that can be surfaced to users. Only active questions
// are eligible for delivery.
type Question struct {
	ID       int64
	Text     string
	Category string
	Active   bool
}

// UserAnswer is a journal entry written in response to a question.
type UserAnswer struct {
	ID         string
	UserID     string
	QuestionID int64
	Text       string
	EmotionTag string
	AnsweredAt time.Time
}
