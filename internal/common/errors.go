// Package common defines shared constants and sentinel errors used across
// the Lumia backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal           = errors.New("internal error")
	ErrUserNotFound       = errors.New("user not found")
	ErrLoginAlreadyExists = errors.New("login already exists")

	// Credential errors. Deliberately a single value for both an unknown
	// user and a wrong password, so login failures never reveal whether an
	// account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Access-token verification errors.
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedToken   = errors.New("malformed token")
	ErrUnsupportedToken = errors.New("unsupported token")

	// Refresh-token lifecycle errors.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)
