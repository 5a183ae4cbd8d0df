package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type LogoutInput struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// Logout revokes a refresh token. Revoking an unknown or already revoked
// token succeeds.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	tokenHash, err := s.hmac.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.RevokeSession(ctx, string(tokenHash), s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "logout with unknown refresh token")
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo revoke session", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
