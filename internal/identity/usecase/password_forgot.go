package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,mailbox"`
}

// ForgotPassword mails a reset code bound to an existing account.
func (s *Usecase) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ForgotPassword")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unknown email", "email", in.Email)
		return goerror.NewBusiness("No account found with this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueAndDeliver(ctx, acc.Email, entity.PurposePasswordReset, acc.ID)
}
