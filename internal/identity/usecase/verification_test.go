package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_Verification(t *testing.T) {
	// Arrange
	h := newHarness(t)
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")
	ctx := h.authed(acc)

	// Act
	require.NoError(t, h.uc.SendVerification(ctx))
	msg := h.notifier.last()
	out, err := h.uc.ConfirmVerification(ctx, ConfirmVerificationInput{Code: msg.Code})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PurposeVerification, msg.Purpose)
	assert.Equal(t, "x@y.com", msg.To)
	assert.Len(t, out.ShortToken, 32)
	assert.Equal(t, 1, h.db.otpCount(), "generic verification has no terminal redeem")

	got, err := h.db.GetAccountByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified())
}

func TestUsecase_Verification_Failures(t *testing.T) {
	h := newHarness(t)
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "Passw0rd!")

	err := h.uc.SendVerification(context.Background())
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))

	ghost := acc
	ghost.ID = 4040
	err = h.uc.SendVerification(h.authed(ghost))
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))

	require.NoError(t, h.uc.SendVerification(h.authed(acc)))
	code := h.notifier.last().Code

	_, err = h.uc.ConfirmVerification(h.authed(acc), ConfirmVerificationInput{Code: "abc"})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))

	h.clock.Advance(h.uc.ledger.TTL())
	_, err = h.uc.ConfirmVerification(h.authed(acc), ConfirmVerificationInput{Code: code})
	assert.True(t, goerror.HasCode(err, goerror.CodeExpired))

	got, err := h.db.GetAccountByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.False(t, got.EmailVerified())
}
