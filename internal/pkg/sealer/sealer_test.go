package sealer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *AESGCM {
	t.Helper()

	s, err := NewAESGCMFromHex(strings.Repeat("ab", 32))
	require.NoError(t, err)
	return s
}

func TestAESGCM_SealOpen(t *testing.T) {
	t.Parallel()

	// Arrange
	s := newTestSealer(t)
	scope := Scope{Identifier: "a@example.com", Purpose: "registration"}

	// Act
	ct, err := s.Seal([]byte("tok"), scope)
	require.NoError(t, err)
	pt, err := s.Open(ct, scope)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tok", string(pt))
	assert.False(t, bytes.Contains(ct, []byte("tok")))
}

func TestAESGCM_OpenFailures(t *testing.T) {
	t.Parallel()

	s := newTestSealer(t)
	scope := Scope{Identifier: "a@example.com", Purpose: "registration"}
	ct, err := s.Seal([]byte("tok"), scope)
	require.NoError(t, err)

	_, err = s.Open(ct, Scope{Identifier: "a@example.com", Purpose: "password_reset"})
	assert.ErrorIs(t, err, ErrOpenFailed)

	tampered := bytes.Clone(ct)
	tampered[len(tampered)-1] ^= 0xff
	_, err = s.Open(tampered, scope)
	assert.ErrorIs(t, err, ErrOpenFailed)

	_, err = s.Open(ct[:headerLen], scope)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	badVersion := bytes.Clone(ct)
	badVersion[1] = 9
	_, err = s.Open(badVersion, scope)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = s.Seal(nil, scope)
	assert.ErrorIs(t, err, ErrPlaintextEmpty)
}

func TestNewAESGCM_KeyLength(t *testing.T) {
	t.Parallel()

	_, err := NewAESGCM([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = NewAESGCMFromHex("zz")
	assert.Error(t, err)
}
