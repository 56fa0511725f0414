// Package cryptox implements the password hashing scheme: a per-user random
// salt and an argon2id digest. Plaintext passwords never leave this package
// in any other form.
package cryptox

import (
	"crypto/subtle"

	"github.com/avdonin/taskhub/internal/common"
	"golang.org/x/crypto/argon2"
)

const SaltSize = 32

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives a one-way digest from the salt and the plaintext
// password.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword recomputes the digest for the candidate password and
// compares it against the stored hash in constant time.
func VerifyPassword(candidate []byte, salt []byte, hash []byte) bool {
	digest := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare(digest, hash) == 1
}
