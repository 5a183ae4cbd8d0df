package usecase

import (
	"context"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,mailbox"`
	Code  string `json:"code" validate:"required,otpcode"`
}

type VerifyOTPOutput struct {
	ShortToken string
}

// VerifyOTP exchanges a registration code for its short token. The entry is
// kept until Register redeems it.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	token, err := s.ledger.Verify(ctx, in.Email, entity.PurposeRegistration, in.Code)
	if err != nil {
		return nil, ledgerError(ctx, err, "Invalid OTP code", "OTP has expired")
	}

	return &VerifyOTPOutput{ShortToken: token}, nil
}
