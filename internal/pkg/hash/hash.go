// Package hash hashes and verifies secrets.
//
// Passwords use a salted, slow algorithm (bcrypt or argon2id). Lookup keys
// such as one-time codes use HMACSHA256, which is deterministic so the digest
// can be searched for in storage.
package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Hash hashes plaintext and verifies plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

const (
	// AlgorithmBcrypt selects Bcrypt in NewPassword.
	AlgorithmBcrypt = "bcrypt"
	// AlgorithmArgon2id selects Argon2id in NewPassword.
	AlgorithmArgon2id = "argon2id"
)

// PasswordConfig configures NewPassword.
type PasswordConfig struct {
	Algorithm  string
	Pepper     string
	BcryptCost int
}

// NewPassword returns the password hasher named by cfg.Algorithm.
func NewPassword(cfg PasswordConfig) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case AlgorithmBcrypt, "":
		return NewBcrypt(cfg.BcryptCost, cfg.Pepper), nil
	case AlgorithmArgon2id:
		return NewArgon2id(cfg.Pepper), nil
	default:
		return nil, fmt.Errorf("hash: unknown password algorithm %q", cfg.Algorithm)
	}
}

// pepper mixes the secret pepper into plaintext with HMAC so the result has a
// fixed length regardless of input size.
func pepper(secret, plaintext string) []byte {
	if secret == "" {
		return []byte(plaintext)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)

	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum)
	return out
}
