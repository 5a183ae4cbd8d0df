// Package sealer encrypts small secrets at rest with AES-256-GCM. Every
// ciphertext is bound to a Scope through the GCM additional data, so a value
// sealed for one identifier and purpose cannot be opened under another.
package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Sealed layout: uint16 version | 12-byte nonce | ciphertext+tag.
const (
	version   uint16 = 1
	nonceSize        = 12
	keySize          = 32
	headerLen        = 2 + nonceSize
)

var (
	ErrInvalidKeyLength   = errors.New("sealer: key must be 32 bytes")
	ErrPlaintextEmpty     = errors.New("sealer: plaintext is empty")
	ErrCiphertextTooShort = errors.New("sealer: ciphertext too short")
	ErrUnsupportedVersion = errors.New("sealer: unsupported ciphertext version")
	ErrOpenFailed         = errors.New("sealer: open failed")
)

// Scope is authenticated alongside the ciphertext.
type Scope struct {
	Identifier string
	Purpose    string
}

func (s Scope) aad() []byte {
	sum := sha256.Sum256(fmt.Appendf(nil, "identifier=%s\npurpose=%s\n", s.Identifier, s.Purpose))
	return sum[:]
}

// Sealer seals and opens scoped secrets.
type Sealer interface {
	Seal(plaintext []byte, scope Scope) ([]byte, error)
	Open(ciphertext []byte, scope Scope) ([]byte, error)
}

// AESGCM implements Sealer with a single static key.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM builds a sealer from a raw 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != keySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sealer: aes init: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("sealer: gcm init: %w", err)
	}

	return &AESGCM{aead: aead}, nil
}

// NewAESGCMFromHex is NewAESGCM for keys kept as 64 hex characters in config.
func NewAESGCMFromHex(key string) (*AESGCM, error) {
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("sealer: decode key: %w", err)
	}
	return NewAESGCM(raw)
}

// Seal encrypts plaintext for scope.
func (a *AESGCM) Seal(plaintext []byte, scope Scope) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrPlaintextEmpty
	}

	out := make([]byte, headerLen, headerLen+len(plaintext)+a.aead.Overhead())
	binary.BigEndian.PutUint16(out[:2], version)
	if _, err := rand.Read(out[2:headerLen]); err != nil {
		return nil, fmt.Errorf("sealer: nonce: %w", err)
	}

	return a.aead.Seal(out, out[2:headerLen], plaintext, scope.aad()), nil
}

// Open decrypts ciphertext sealed for scope. Any mismatch, whether key,
// scope or tampering, yields ErrOpenFailed.
func (a *AESGCM) Open(ciphertext []byte, scope Scope) ([]byte, error) {
	if len(ciphertext) <= headerLen {
		return nil, ErrCiphertextTooShort
	}
	if v := binary.BigEndian.Uint16(ciphertext[:2]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	plain, err := a.aead.Open(nil, ciphertext[2:headerLen], ciphertext[headerLen:], scope.aad())
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plain, nil
}
