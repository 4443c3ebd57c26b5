// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and the
// access/refresh token lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ch4-lumia/lumia-backend/internal/common"
	"github.com/ch4-lumia/lumia-backend/internal/dbx"
	"github.com/ch4-lumia/lumia-backend/internal/server/auth"
	"github.com/ch4-lumia/lumia-backend/internal/server/config"
	"github.com/ch4-lumia/lumia-backend/internal/server/models"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - SignUp: create users with default notification settings
//   - Login: verify credentials and mint a token pair
//   - Refresh: mint a new access token against a stored refresh token
//   - Logout: drop the stored refresh token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	refreshTTL  time.Duration
}

// NewUserService constructs a UserService using repositories, the token
// codec, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		codec:       codec,
		refreshTTL:  cfg.RefreshTokenValidityDuration,
	}
}

// SignUp creates a new user with a bcrypt-hashed password and a default
// notification policy, in one transaction. A taken login yields
// common.ErrLoginAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, login, password, name, email string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: string(hash),
		Name:         name,
		Email:        email,
		Role:         "ROLE_USER",
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return s.repomanager.Settings(tx).Upsert(ctx, models.DefaultNotificationPolicy(user.ID))
	}); err != nil {
		if errors.Is(err, common.ErrLoginAlreadyExists) {
			return nil, common.ErrLoginAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the provided password and, on success, returns a fresh
// token pair. The new refresh token replaces any previously stored one for
// the user, so only one session stays valid. An unknown login and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.issueTokenPair(ctx, user.ID)
}

// Refresh validates a presented refresh token and mints a new access token
// for its owner. The refresh token itself is returned unchanged: no rotation,
// so concurrent clients holding the same refresh token stay valid. A token
// found expired is deleted on the spot.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	rec, err := repo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if rec.ExpiresAt.Before(time.Now()) {
		// Eager cleanup: an expired token is removed as soon as it is
		// presented.
		if err := repo.Delete(ctx, rec); err != nil {
			return nil, fmt.Errorf("error deleting expired refresh token: %w", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	access, err := s.codec.IssueAccessToken(rec.UserID, time.Now())
	if err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout removes the stored refresh token of userID. Logging out a user with
// no stored token is not an error.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.repomanager.RefreshTokens(s.db).DeleteByUser(ctx, userID)
}

func (s *UserService) issueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	now := time.Now()

	access, err := s.codec.IssueAccessToken(userID, now)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := s.codec.IssueRefreshToken(userID, now)
	if err != nil {
		return nil, common.ErrInternal
	}

	if _, err := s.repomanager.RefreshTokens(s.db).UpsertForUser(ctx, userID, refresh, now.Add(s.refreshTTL)); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
