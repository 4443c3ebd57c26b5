package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ch4-lumia/lumia-backend/internal/common"
)

// TokenInfo is the verified content of a token.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec creates and verifies the signed token strings. It is purely
// functional over the signing key and safe for concurrent use.
type Codec struct {
	key        Key
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec constructs a Codec. Access and refresh tokens share the key and
// differ only in lifetime.
func NewCodec(key Key, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{key: key, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccessToken mints a short-lived access token for subject with
// iat=now and exp=now+accessTTL.
func (c *Codec) IssueAccessToken(subject string, now time.Time) (string, error) {
	return c.issue(subject, now, c.accessTTL)
}

// IssueRefreshToken mints a refresh token for subject with exp=now+refreshTTL.
// Issuing is independent of storage; persisting the token is the caller's job.
func (c *Codec) IssueRefreshToken(subject string, now time.Time) (string, error) {
	return c.issue(subject, now, c.refreshTTL)
}

func (c *Codec) issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString([]byte(c.key))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns its content.
// Failures map onto the sentinel errors in common: ErrMalformedToken,
// ErrTokenExpired, ErrInvalidSignature, ErrUnsupportedToken.
func (c *Codec) Verify(tokenString string) (*TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc)
	if err != nil {
		return nil, classify(err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Subject returns the subject of a token whose signature checks out,
// regardless of expiry. Useful when the identity is wanted for diagnostics
// on an expired token.
func (c *Codec) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(tokenString, claims, c.keyFunc)
	if err != nil {
		return "", classify(err)
	}
	return claims.Subject, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: alg %v", common.ErrUnsupportedToken, t.Header["alg"])
	}
	return []byte(c.key), nil
}

// classify maps golang-jwt parse errors onto our taxonomy. Expiry is checked
// before signature state so an expired-but-authentic token reports
// ErrTokenExpired, never ErrInvalidSignature.
func classify(err error) error {
	switch {
	case errors.Is(err, common.ErrUnsupportedToken):
		return common.ErrUnsupportedToken
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return common.ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
}
