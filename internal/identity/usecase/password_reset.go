package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/ledger"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type ResetPasswordInput struct {
	Email           string `json:"email" validate:"required,mailbox"`
	Code            string `json:"code" validate:"required,otpcode"`
	NewPassword     string `json:"new_password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// ResetPassword redeems a reset code and overwrites the password in one
// commit. Every open session of the account is revoked with it.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset for unknown email", "email", in.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	newHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	err = s.ledger.RedeemByCode(ctx, in.Email, entity.PurposePasswordReset, in.Code, func(ctx context.Context, e entity.OTP) error {
		// An entry issued to a since-replaced account must not reset this one.
		if e.AccountID != acc.ID {
			return ledger.ErrNotFound
		}
		if err := s.repoDB.UpdateAccountPassword(ctx, acc.ID, string(newHash)); err != nil {
			return err
		}
		return s.repoDB.RevokeAccountSessions(ctx, acc.ID, now)
	})
	if err != nil {
		return ledgerError(ctx, err, "Invalid OTP code", "OTP has expired")
	}

	if err := s.repoMessaging.PublishUserPasswordReset(ctx, UserPasswordResetEvent{
		UserID:  acc.ID,
		Email:   acc.Email,
		ResetAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user password reset", "user_id", acc.ID, "error", err)
	}

	return nil
}
