// Package encode derives and compares password hashes.
//
// Hashes are PBKDF2-HMAC-SHA256 with a fixed iteration count and key length.
// The salt is 16 random bytes stored as 32 hex chars; the hex text itself is
// the PBKDF2 salt, so hashes produced before the Go rewrite still verify.
package encode

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 310_000
	KeyLength  = 32
	SaltLength = 16
)

var ErrEmptySalt = errors.New("password salt is empty")

// NewSalt returns a fresh hex-encoded salt. Call it on every password set.
func NewSalt() (string, error) {
	b := make([]byte, SaltLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword is deterministic for a given (password, salt) pair.
func HashPassword(password, salt string) ([]byte, error) {
	if salt == "" {
		return nil, ErrEmptySalt
	}
	return pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New), nil
}

// Equal compares two derived keys in constant time. Keys of different length
// never match; the length of a derived key is not secret.
func Equal(a, b []byte) bool {
	if len(a) != KeyLength || len(b) != KeyLength {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
