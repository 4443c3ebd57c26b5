package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/repomanager"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// AnswerService stores and lists the journal entries users write in
// response to questions.
type AnswerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAnswerService constructs an AnswerService.
func NewAnswerService(db *sql.DB, m repomanager.RepositoryManager) *AnswerService {
	return &AnswerService{db: db, repomanager: m}
}

// Save records a user's answer to a question.
func (s *AnswerService) Save(ctx context.Context, userID string, questionID int64, text, emotionTag string) (*models.UserAnswer, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if _, err := s.repomanager.Questions(s.db).GetByID(ctx, questionID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading question: %w", err)
	}

	answer := &models.UserAnswer{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		Text:       text,
		EmotionTag: emotionTag,
	}
	saved, err := s.repomanager.Answers(s.db).Create(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("error saving answer: %w", err)
	}
	return saved, nil
}

// List returns a page of the user's answers, newest first. Page numbers are
// zero-based; out-of-range sizes are clamped.
func (s *AnswerService) List(ctx context.Context, userID string, page, size int) ([]*models.UserAnswer, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	list, err := s.repomanager.Answers(s.db).ListByUser(ctx, userID, size, page*size)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %w", err)
	}
	return list, nil
}
