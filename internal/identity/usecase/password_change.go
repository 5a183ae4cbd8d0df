package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type ChangePasswordInput struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,password"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
	RefreshToken       string `json:"refresh_token"`
}

// ChangePassword replaces the authenticated account's password and revokes
// the refresh token the client holds. A failed revoke is only logged.
func (s *Usecase) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	ctx, span := s.startSpan(ctx, "ChangePassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.currentAccount(ctx)
	if err != nil {
		return err
	}

	if !s.password.Verify(acc.PasswordHash, in.OldPassword) {
		slog.WarnContext(ctx, "current password mismatch", "user_id", acc.ID)
		return goerror.NewInvalidInput(nil, "old_password", "Incorrect old password")
	}

	newHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAccountPassword(ctx, acc.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update user password", "user_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	if in.RefreshToken != "" {
		tokenHash, err := s.hmac.Hash(in.RefreshToken)
		if err == nil {
			err = s.repoDB.RevokeSession(ctx, string(tokenHash), s.clock.Now())
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to revoke refresh token after password change", "user_id", acc.ID, "error", err)
		}
	}

	return nil
}
