package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/notification/entity"
)

type ConsumeUserRegisteredInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

// ConsumeUserRegistered sends the welcome email. Invalid payloads are dropped.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["username"] = in.Username

	if err := s.sendEmail(ctx, in.Email, entity.TriggerKeyUserWelcome, data); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
