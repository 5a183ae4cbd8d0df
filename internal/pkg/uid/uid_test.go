package uid

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphanumeric_Generate(t *testing.T) {
	t.Parallel()

	gen := NewAlphanumeric(32)
	re := regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		token := gen.Generate()
		require.Regexp(t, re, token)
		seen[token] = struct{}{}
	}

	assert.Len(t, seen, 1000)
}

func TestAlphanumeric_RejectsBiasedBytes(t *testing.T) {
	t.Parallel()

	// every byte >= 248 must be skipped; 0 maps to 'A', 61 maps to '9'
	src := append(bytes.Repeat([]byte{255}, 10), 0, 61, 250, 62)
	gen := &Alphanumeric{length: 3, random: bytes.NewReader(append(src, make([]byte, 64)...))}

	got, err := gen.generate()

	require.NoError(t, err)
	assert.Equal(t, "A9A", got)
}

func TestAlphanumeric_ShortRead(t *testing.T) {
	t.Parallel()

	gen := &Alphanumeric{length: 8, random: bytes.NewReader([]byte{1})}

	_, err := gen.generate()

	assert.Error(t, err)
}

func TestSnowflake_Monotonic(t *testing.T) {
	t.Parallel()

	gen, err := NewSnowflake(1)
	require.NoError(t, err)

	prev := gen.Generate()
	for range 100 {
		next := gen.Generate()
		assert.Greater(t, next, prev)
		prev = next
	}

	_, err = NewSnowflake(5000)
	assert.Error(t, err)

	random, err := NewSnowflake(-1)
	require.NoError(t, err)
	assert.Positive(t, random.Generate())
}

func TestUUID_Generate(t *testing.T) {
	t.Parallel()

	id, err := uuid.Parse(NewUUID().Generate())

	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
