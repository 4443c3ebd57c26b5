package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsertForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+UPDATE\s+SET\s+token\s*=\s*EXCLUDED\.token,\s*expires_at\s*=\s*EXCLUDED\.expires_at\s*RETURNING\s+id,\s*created_at\s*$`

	expires := time.Now().Add(720 * time.Hour)
	created := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", "tok", expires).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("rt-1", created))

	rec, err := repo.UpsertForUser(context.Background(), "u-1", "tok", expires)
	if err != nil {
		t.Fatalf("UpsertForUser error: %v", err)
	}
	if rec.ID != "rt-1" || rec.UserID != "u-1" || rec.Token != "tok" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", rec.CreatedAt)
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*user_id,\s*token,\s*expires_at,\s*created_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at"}).
		AddRow("rt-1", "u-1", "tok", time.Now().Add(time.Hour), time.Now())
	mock.ExpectQuery(q).WithArgs("tok").WillReturnRows(rows)

	rec, err := repo.FindByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
	if rec.UserID != "u-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,\s*user_id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteByUser error: %v", err)
	}
	// Deleting again is a no-op, not an error.
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.DeleteByUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("repeat DeleteByUser error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("rt-1").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), &models.RefreshToken{ID: "rt-1"})
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
