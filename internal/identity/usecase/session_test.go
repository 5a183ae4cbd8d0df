package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_Login(t *testing.T) {
	// Arrange
	h := newHarness(t)
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")

	// Act
	out, err := h.uc.Login(context.Background(), LoginInput{Email: " X@y.COM", Password: "Passw0rd!"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, acc.ID, out.Account.ID)
	assert.NotEmpty(t, out.AccessToken)
	assert.Len(t, out.RefreshToken, 64)
}

func TestUsecase_Login_Indistinguishable(t *testing.T) {
	h := newHarness(t)
	h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")
	ctx := context.Background()

	_, unknown := h.uc.Login(ctx, LoginInput{Email: "nobody@y.com", Password: "Passw0rd!"})
	_, wrong := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "nope"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.True(t, goerror.HasCode(unknown, goerror.CodeUnauthorized))
	assert.True(t, goerror.HasCode(wrong, goerror.CodeUnauthorized))
}

func TestUsecase_RefreshToken_Rotates(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.Background()
	h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")
	login, err := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	// Act
	pair, err := h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	_, reuse := h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})

	// Assert
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)
	assert.True(t, goerror.HasCode(reuse, goerror.CodeUnauthorized))

	_, err = h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.NoError(t, err)
}

func TestUsecase_RefreshToken_Expired(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")
	login, err := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	h.clock.Advance(7*24*time.Hour + time.Second)
	_, err = h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})

	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))
}

func TestUsecase_Logout(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.Background()
	h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")
	login, err := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	// Act
	err = h.uc.Logout(ctx, LogoutInput{RefreshToken: login.RefreshToken})
	again := h.uc.Logout(ctx, LogoutInput{RefreshToken: login.RefreshToken})
	missing := h.uc.Logout(ctx, LogoutInput{})

	// Assert
	require.NoError(t, err)
	assert.NoError(t, again)
	assert.True(t, goerror.HasCode(missing, goerror.CodeInvalidInput))

	_, err = h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))
}
