// Package repomanager vends repository implementations bound to a DBTX and
// owns schema migration at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/answers"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/questions"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/refreshtokens"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/settings"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the shared pool
// or an open transaction, so services can compose repository calls inside
// dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Settings(db dbx.DBTX) settings.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
}
