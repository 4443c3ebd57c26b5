package questions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) PickActive(ctx context.Context, category string) (*models.Question, error) {
	// The pool is small (curated prompts), so ORDER BY random() is fine here.
	query := `
		SELECT id, question_text, category, is_active
		FROM questions
		WHERE category = $1 AND is_active
		ORDER BY random()
		LIMIT 1
	`
	return r.scanQuestion(r.db.QueryRowContext(ctx, query, category))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT id, question_text, category, is_active
		FROM questions
		WHERE id = $1 AND is_active
	`
	return r.scanQuestion(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanQuestion(row *sql.Row) (*models.Question, error) {
	q := &models.Question{}
	err := row.Scan(&q.ID, &q.Text, &q.Category, &q.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}
