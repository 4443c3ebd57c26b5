package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ch4-lumia/lumia-backend/internal/common"
)

func newTestCodec() *Codec {
	return NewCodec(Key("0123456789abcdef0123456789abcdef"), time.Hour, 30*24*time.Hour)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	now := time.Now().Truncate(time.Second)

	tok, err := c.IssueAccessToken("user-123", now)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	info, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if info.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", info.Subject, "user-123")
	}
	if !info.IssuedAt.Equal(now) {
		t.Fatalf("issuedAt mismatch: got %v want %v", info.IssuedAt, now)
	}
	if !info.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiresAt mismatch: got %v want %v", info.ExpiresAt, now.Add(time.Hour))
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec()

	tok, err := c.IssueAccessToken("u1", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = c.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expired token must not report invalid signature")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	other := NewCodec(Key("another-secret-key-of-32-bytes!!"), time.Hour, time.Hour)

	tok, err := other.IssueAccessToken("u2", time.Now())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = c.Verify(tok)
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec()

	_, err := c.Verify("not.a.jwt")
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestVerify_UnsupportedAlg(t *testing.T) {
	t.Parallel()

	c := newTestCodec()

	// alg=none is rejected before any signature check.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing unsigned token: %v", err)
	}

	_, err = c.Verify(tok)
	if !errors.Is(err, common.ErrUnsupportedToken) {
		t.Fatalf("expected ErrUnsupportedToken, got %v", err)
	}
}

func TestSubject_IgnoresExpiry(t *testing.T) {
	t.Parallel()

	c := newTestCodec()

	tok, err := c.IssueRefreshToken("u4", time.Now().Add(-48*31*time.Hour))
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	sub, err := c.Subject(tok)
	if err != nil {
		t.Fatalf("Subject error: %v", err)
	}
	if sub != "u4" {
		t.Fatalf("subject mismatch: got %q want %q", sub, "u4")
	}
}

func TestSubject_StillChecksSignature(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	other := NewCodec(Key("another-secret-key-of-32-bytes!!"), time.Hour, time.Hour)

	tok, err := other.IssueAccessToken("u5", time.Now())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = c.Subject(tok)
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
