package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type SendOTPInput struct {
	Email string `json:"email" validate:"required,mailbox"`
}

// SendOTP starts registration: it mails a code to an email that has no
// account yet.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) error {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.ExistsAccountByEmail(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check account email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if exists {
		slog.WarnContext(ctx, "otp requested for registered email", "email", in.Email)
		return goerror.NewBusiness("An account with this email already exists", goerror.CodeConflict)
	}

	return s.issueAndDeliver(ctx, in.Email, entity.PurposeRegistration, 0)
}
