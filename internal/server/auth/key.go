// Package auth issues and verifies the signed tokens used by the Lumia
// backend: short-lived access tokens and longer-lived refresh tokens, both
// HS256 JWTs over a single symmetric key derived once at startup.
package auth

import (
	"encoding/base64"
	"regexp"
)

// MinKeyLen is the minimum recommended key size for HS256 signing.
const MinKeyLen = 32

// Key is the immutable symmetric signing key. It is derived once at startup
// and passed into the codec at construction; it must never be logged or
// serialized.
type Key []byte

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

func looksLikeBase64(s string) bool {
	return s != "" && len(s)%4 == 0 && base64Pattern.MatchString(s)
}

// DeriveKey turns the configured secret into key material. Secrets that look
// like standard base64 are decoded; anything else is used as raw UTF-8 bytes,
// so operators may supply either form.
func DeriveKey(secret string) Key {
	if looksLikeBase64(secret) {
		if decoded, err := base64.StdEncoding.DecodeString(secret); err == nil {
			return Key(decoded)
		}
	}
	return Key(secret)
}

// Strong reports whether the key meets the HS256 size floor. The server
// starts with a weak key but logs a warning.
func (k Key) Strong() bool {
	return len(k) >= MinKeyLen
}
