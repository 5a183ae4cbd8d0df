package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/bazaar/internal/notification/entity"
)

type ConsumeUserPasswordResetInput struct {
	UserID  int64  `validate:"required,gt=0"`
	Email   string `validate:"required,email"`
	ResetAt time.Time
}

// ConsumeUserPasswordReset tells the account owner their password changed.
func (s *Usecase) ConsumeUserPasswordReset(ctx context.Context, in ConsumeUserPasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserPasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	at := in.ResetAt
	if at.IsZero() {
		at = s.clock.Now()
	}

	data := s.baseEmailTemplateData()
	data["email"] = in.Email
	data["reset_at"] = at.UTC().Format("02 Jan 2006 15:04 MST")

	if err := s.sendEmail(ctx, in.Email, entity.TriggerKeyPasswordChanged, data); err != nil {
		slog.ErrorContext(ctx, "failed to send password changed email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
