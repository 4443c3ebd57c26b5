// Package questions declares the repository contract for the prompt pool.
package questions

import (
	"context"

	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// Repository provides read access to the question pool.
type Repository interface {
	// PickActive returns a random active question of the given category.
	// An empty pool yields common.ErrNotFound.
	PickActive(ctx context.Context, category string) (*models.Question, error)

	// GetByID looks up a question by primary key. Absent or inactive rows
	// yield common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Question, error)
}
