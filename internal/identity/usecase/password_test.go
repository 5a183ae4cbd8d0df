package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_ForgotPassword(t *testing.T) {
	// Arrange
	h := newHarness(t)
	h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")

	// Act
	err := h.uc.ForgotPassword(context.Background(), ForgotPasswordInput{Email: "X@Y.com"})

	// Assert
	require.NoError(t, err)
	msg := h.notifier.last()
	assert.Equal(t, "x@y.com", msg.To)
	assert.Equal(t, entity.PurposePasswordReset, msg.Purpose)
	for _, e := range h.db.otps {
		assert.Equal(t, int64(9001), e.AccountID)
	}
}

func TestUsecase_ForgotPassword_Failures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	err := h.uc.ForgotPassword(ctx, ForgotPasswordInput{Email: "nobody@y.com"})
	assert.True(t, goerror.HasCode(err, goerror.CodeNotFound))

	h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")
	h.notifier.err = errors.New("mailbox unavailable")
	err = h.uc.ForgotPassword(ctx, ForgotPasswordInput{Email: "x@y.com"})
	assert.True(t, goerror.HasCode(err, goerror.CodeDelivery))
	assert.Zero(t, h.db.otpCount())
}

func TestUsecase_ResetPassword(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.Background()
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")
	login, err := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "OldPassw0rd"})
	require.NoError(t, err)
	require.NoError(t, h.uc.ForgotPassword(ctx, ForgotPasswordInput{Email: "x@y.com"}))
	code := h.notifier.last().Code

	// Act
	err = h.uc.ResetPassword(ctx, ResetPasswordInput{
		Email:           "x@y.com",
		Code:            code,
		NewPassword:     "NewPassw0rd!",
		ConfirmPassword: "NewPassw0rd!",
	})

	// Assert
	require.NoError(t, err)
	got, err := h.db.GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, h.password.Verify(got.PasswordHash, "NewPassw0rd!"))
	assert.Zero(t, h.db.otpCount())
	require.Len(t, h.mq.reset, 1)

	_, err = h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized), "sessions are revoked by a reset")

	err = h.uc.ResetPassword(ctx, ResetPasswordInput{
		Email: "x@y.com", Code: code, NewPassword: "Another123", ConfirmPassword: "Another123",
	})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidOTP))
}

func TestUsecase_ResetPassword_Failures(t *testing.T) {
	tests := []struct {
		name     string
		arrange  func(h *harness, in *ResetPasswordInput)
		wantCode goerror.Code
		wantOTPs int
	}{
		{
			name:     "passwords differ",
			arrange:  func(_ *harness, in *ResetPasswordInput) { in.ConfirmPassword = "Mismatch123" },
			wantCode: goerror.CodeInvalidInput,
			wantOTPs: 1,
		},
		{
			name: "password over bcrypt limit",
			arrange: func(h *harness, in *ResetPasswordInput) {
				h.uc.password = hash.NewBcrypt(4, "")
				in.NewPassword = strings.Repeat("é", 40)
				in.ConfirmPassword = in.NewPassword
			},
			wantCode: goerror.CodeInvalidInput,
			wantOTPs: 1,
		},
		{
			name: "digits only password",
			arrange: func(_ *harness, in *ResetPasswordInput) {
				in.NewPassword, in.ConfirmPassword = "20260504", "20260504"
			},
			wantCode: goerror.CodeInvalidInput,
			wantOTPs: 1,
		},
		{
			name:     "unknown account",
			arrange:  func(_ *harness, in *ResetPasswordInput) { in.Email = "nobody@y.com" },
			wantCode: goerror.CodeNotFound,
			wantOTPs: 1,
		},
		{
			name:     "expired code",
			arrange:  func(h *harness, _ *ResetPasswordInput) { h.clock.Advance(h.uc.ledger.TTL()) },
			wantCode: goerror.CodeExpired,
			wantOTPs: 0,
		},
		{
			name: "registration code cannot reset",
			arrange: func(h *harness, in *ResetPasswordInput) {
				h.db.otps = map[int64]entity.OTP{}
				require.NoError(t, h.uc.SendOTP(context.Background(), SendOTPInput{Email: "new@y.com"}))
				in.Email = "x@y.com"
				in.Code = h.notifier.last().Code
			},
			wantCode: goerror.CodeInvalidOTP,
			wantOTPs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			h := newHarness(t)
			ctx := context.Background()
			h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")
			require.NoError(t, h.uc.ForgotPassword(ctx, ForgotPasswordInput{Email: "x@y.com"}))
			in := ResetPasswordInput{
				Email:           "x@y.com",
				Code:            h.notifier.last().Code,
				NewPassword:     "NewPassw0rd!",
				ConfirmPassword: "NewPassw0rd!",
			}
			tt.arrange(h, &in)

			// Act
			err := h.uc.ResetPassword(ctx, in)

			// Assert
			assert.True(t, goerror.HasCode(err, tt.wantCode), "got %v", err)
			acc, lookupErr := h.db.GetAccountByID(ctx, 9001)
			require.NoError(t, lookupErr)
			assert.True(t, h.password.Verify(acc.PasswordHash, "OldPassw0rd"), "password is unchanged")
			assert.Equal(t, tt.wantOTPs, h.db.otpCount())
			assert.Empty(t, h.mq.reset)
		})
	}
}

func TestUsecase_ChangePassword(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.Background()
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")
	login, err := h.uc.Login(ctx, LoginInput{Email: "x@y.com", Password: "OldPassw0rd"})
	require.NoError(t, err)

	// Act
	err = h.uc.ChangePassword(h.authed(acc), ChangePasswordInput{
		OldPassword:        "OldPassw0rd",
		NewPassword:        "NewPassw0rd!",
		ConfirmNewPassword: "NewPassw0rd!",
		RefreshToken:       login.RefreshToken,
	})

	// Assert
	require.NoError(t, err)
	got, err := h.db.GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, h.password.Verify(got.PasswordHash, "NewPassw0rd!"))

	_, err = h.uc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))
}

func TestUsecase_ChangePassword_Failures(t *testing.T) {
	h := newHarness(t)
	acc := h.seedAccount(t, 9001, "xavier", "x@y.com", "OldPassw0rd")

	err := h.uc.ChangePassword(context.Background(), ChangePasswordInput{
		OldPassword: "OldPassw0rd", NewPassword: "NewPassw0rd!", ConfirmNewPassword: "NewPassw0rd!",
	})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))

	err = h.uc.ChangePassword(h.authed(acc), ChangePasswordInput{
		OldPassword: "WrongPassw0rd", NewPassword: "NewPassw0rd!", ConfirmNewPassword: "NewPassw0rd!",
	})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))

	long := strings.Repeat("é", 40)
	err = h.uc.ChangePassword(h.authed(acc), ChangePasswordInput{
		OldPassword: "OldPassw0rd", NewPassword: long, ConfirmNewPassword: long,
	})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))

	err = h.uc.ChangePassword(h.authed(acc), ChangePasswordInput{
		OldPassword: "OldPassw0rd", NewPassword: "NewPassw0rd!", ConfirmNewPassword: "Other",
	})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))

	err = h.uc.ChangePassword(h.authed(acc), ChangePasswordInput{
		OldPassword: "OldPassw0rd", NewPassword: "NewPassw0rd!", ConfirmNewPassword: "NewPassw0rd!",
		RefreshToken: "never-issued",
	})
	assert.NoError(t, err, "failing to revoke an unknown token is not fatal")
}
