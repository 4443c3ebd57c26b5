package answers

import (
	"context"
	"database/sql"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, answer *models.UserAnswer) (*models.UserAnswer, error) {
	query := `
		INSERT INTO user_answers (id, user_id, question_id, answer_text, emotion_tag)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING answered_at
	`
	err := r.db.QueryRowContext(ctx, query,
		answer.ID, answer.UserID, answer.QuestionID, answer.Text, answer.EmotionTag).
		Scan(&answer.AnsweredAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return answer, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.UserAnswer, error) {
	query := `
		SELECT id, user_id, question_id, answer_text, emotion_tag, answered_at
		FROM user_answers
		WHERE user_id = $1
		ORDER BY answered_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []*models.UserAnswer
	for rows.Next() {
		a := &models.UserAnswer{}
		var tag sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Text, &tag, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		a.EmotionTag = tag.String
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
