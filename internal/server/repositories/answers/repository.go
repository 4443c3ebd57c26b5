// Package answers declares the repository contract for journal entries.
package answers

import (
	"context"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// Repository stores the answers users write to questions.
type Repository interface {
	// Create inserts a new answer and fills in its AnsweredAt.
	Create(ctx context.Context, answer *models.UserAnswer) (*models.UserAnswer, error)

	// ListByUser returns a user's answers newest-first, with limit/offset
	// paging.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.UserAnswer, error)
}
