package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type ConfirmVerificationInput struct {
	Code string `json:"code" validate:"required,otpcode"`
}

type ConfirmVerificationOutput struct {
	ShortToken string
}

// SendVerification mails a code to the authenticated account's email.
func (s *Usecase) SendVerification(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "SendVerification")
	defer span.End()

	acc, err := s.currentAccount(ctx)
	if err != nil {
		return err
	}

	return s.issueAndDeliver(ctx, acc.Email, entity.PurposeVerification, acc.ID)
}

// ConfirmVerification checks the code, stamps the email as verified and hands
// back the short token for whatever follow-up the caller has in mind.
func (s *Usecase) ConfirmVerification(ctx context.Context, in ConfirmVerificationInput) (*ConfirmVerificationOutput, error) {
	ctx, span := s.startSpan(ctx, "ConfirmVerification")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.ledger.Verify(ctx, acc.Email, entity.PurposeVerification, in.Code)
	if err != nil {
		return nil, ledgerError(ctx, err, "Invalid OTP code", "OTP has expired")
	}

	if !acc.EmailVerified() {
		if err := s.repoDB.MarkAccountEmailVerified(ctx, acc.ID, s.clock.Now()); err != nil {
			slog.ErrorContext(ctx, "failed to repo mark email verified", "user_id", acc.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	return &ConfirmVerificationOutput{ShortToken: token}, nil
}

func (s *Usecase) currentAccount(ctx context.Context) (*entity.Account, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "authenticated account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return acc, nil
}
