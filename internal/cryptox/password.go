// Package cryptox derives and compares password hashes for the identity
// registry. Salts and hashes travel as lowercase hex so they fit the JSON
// user records.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the number of random bytes in a fresh salt.
const SaltSize = 16

// NewSalt returns SaltSize random bytes, hex-encoded.
func NewSalt() string {
	return hex.EncodeToString(common.GenerateRandByteArray(SaltSize))
}

func deriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns the hex-encoded argon2id key for password under the
// hex-encoded salt.
func HashPassword(password, salt string) (string, error) {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return hex.EncodeToString(deriveKey(pw, rawSalt)), nil
}

// VerifyPassword reports whether password hashes to hash under salt.
// A malformed salt or hash never matches.
func VerifyPassword(password, salt, hash string) bool {
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return subtle.ConstantTimeCompare(deriveKey(pw, rawSalt), want) == 1
}
