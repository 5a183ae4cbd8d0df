package ratelimit

import (
	"context"
	"testing"

	"github.com/shandysiswandi/bazaar/internal/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUlule_Memory(t *testing.T) {
	t.Parallel()

	// Arrange
	lim, err := New("2-M", nil, "test")
	require.NoError(t, err)
	ctx := context.Background()

	// Act
	first, err1 := lim.Take(ctx, "1.2.3.4")
	second, err2 := lim.Take(ctx, "1.2.3.4")
	third, err3 := lim.Take(ctx, "1.2.3.4")
	other, err4 := lim.Take(ctx, "5.6.7.8")

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	require.NoError(t, err4)

	assert.Equal(t, int64(2), first.Limit)
	assert.Equal(t, int64(1), first.Remaining)
	assert.False(t, second.Reached)
	assert.True(t, third.Reached)
	assert.False(t, other.Reached)
	assert.False(t, first.Reset.IsZero())
}

func TestNew_BadRate(t *testing.T) {
	t.Parallel()

	_, err := New("lots", nil, "")
	assert.Error(t, err)
}

func TestUlule_Redis(t *testing.T) {
	client := testkit.Redis(t)

	lim, err := New("1-H", client, "it")
	require.NoError(t, err)

	r1, err := lim.Take(context.Background(), "k")
	require.NoError(t, err)
	r2, err := lim.Take(context.Background(), "k")
	require.NoError(t, err)

	assert.False(t, r1.Reached)
	assert.True(t, r2.Reached)
}
