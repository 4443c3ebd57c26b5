package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	answersrepo "github.com/ch4-lumia/lumia-backend/internal/server/repositories/answers"
	questionsrepo "github.com/ch4-lumia/lumia-backend/internal/server/repositories/questions"
	refreshtokensrepo "github.com/ch4-lumia/lumia-backend/internal/server/repositories/refreshtokens"
	settingsrepo "github.com/ch4-lumia/lumia-backend/internal/server/repositories/settings"
	usersrepo "github.com/ch4-lumia/lumia-backend/internal/server/repositories/users"
)

// In-memory fakes keyed the way the Postgres repos are keyed. They let the
// service tests assert storage-level invariants (one refresh token per user,
// monotonic delivery timestamp) without a database.

type fakeUsersRepo struct {
	byLogin map[string]*models.User
	byID    map[string]*models.User

	createErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byLogin: map[string]*models.User{}, byID: map[string]*models.User{}}
	for _, u := range users {
		f.byLogin[u.Login] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byLogin[u.Login]; ok {
		return nil, common.ErrLoginAlreadyExists
	}
	f.byLogin[u.Login] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if u, ok := f.byLogin[login]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

type fakeRefreshRepo struct {
	byUser map[string]*models.RefreshToken

	upsertErr error
	deleteErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{byUser: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) UpsertForUser(ctx context.Context, userID, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	rec, ok := f.byUser[userID]
	if !ok {
		rec = &models.RefreshToken{ID: "rt-" + userID, UserID: userID, CreatedAt: time.Now()}
		f.byUser[userID] = rec
	}
	rec.Token = token
	rec.ExpiresAt = expiresAt
	return rec, nil
}

func (f *fakeRefreshRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	for _, rec := range f.byUser {
		if rec.Token == token {
			return rec, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeRefreshRepo) FindByUser(ctx context.Context, userID string) (*models.RefreshToken, error) {
	if rec, ok := f.byUser[userID]; ok {
		return rec, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRefreshRepo) DeleteByUser(ctx context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byUser, userID)
	return nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token *models.RefreshToken) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for userID, rec := range f.byUser {
		if rec.ID == token.ID {
			delete(f.byUser, userID)
		}
	}
	return nil
}

type fakeSettingsRepo struct {
	byUser map[string]*models.NotificationPolicy

	getErr    error
	upsertErr error
	setErr    error
}

func newFakeSettingsRepo(policies ...*models.NotificationPolicy) *fakeSettingsRepo {
	f := &fakeSettingsRepo{byUser: map[string]*models.NotificationPolicy{}}
	for _, p := range policies {
		f.byUser[p.UserID] = p
	}
	return f
}

func (f *fakeSettingsRepo) Get(ctx context.Context, userID string) (*models.NotificationPolicy, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, policy *models.NotificationPolicy) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing, ok := f.byUser[policy.UserID]; ok {
		policy.LastDeliveredAt = existing.LastDeliveredAt
	}
	f.byUser[policy.UserID] = policy
	return nil
}

func (f *fakeSettingsRepo) SetLastDeliveredAt(ctx context.Context, userID string, at time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	p, ok := f.byUser[userID]
	if !ok {
		return nil
	}
	if p.LastDeliveredAt == nil || !p.LastDeliveredAt.After(at) {
		t := at
		p.LastDeliveredAt = &t
	}
	return nil
}

type fakeQuestionsRepo struct {
	questions []*models.Question

	pickErr error
}

func (f *fakeQuestionsRepo) PickActive(ctx context.Context, category string) (*models.Question, error) {
	if f.pickErr != nil {
		return nil, f.pickErr
	}
	for _, q := range f.questions {
		if q.Category == category && q.Active {
			return q, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeQuestionsRepo) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	for _, q := range f.questions {
		if q.ID == id && q.Active {
			return q, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeAnswersRepo struct {
	answers []*models.UserAnswer

	createErr error
}

func (f *fakeAnswersRepo) Create(ctx context.Context, a *models.UserAnswer) (*models.UserAnswer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.AnsweredAt = time.Now()
	f.answers = append(f.answers, a)
	return a, nil
}

func (f *fakeAnswersRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.UserAnswer, error) {
	var mine []*models.UserAnswer
	for _, a := range f.answers {
		if a.UserID == userID {
			mine = append(mine, a)
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	mine = mine[offset:]
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	s *fakeSettingsRepo
	q *fakeQuestionsRepo
	a *fakeAnswersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }

func (m *fakeRepoManager) Settings(db dbx.DBTX) settingsrepo.Repository { return m.s }

func (m *fakeRepoManager) Questions(db dbx.DBTX) questionsrepo.Repository { return m.q }

func (m *fakeRepoManager) Answers(db dbx.DBTX) answersrepo.Repository { return m.a }
