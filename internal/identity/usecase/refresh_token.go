package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type RefreshTokenInput struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// RefreshToken rotates a refresh token: the presented one is revoked and a
// new pair is issued. Of two concurrent rotations of one token only the first
// succeeds.
func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*entity.TokenPair, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tokenHash, err := s.hmac.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	sess, err := s.repoDB.GetSessionByTokenHash(ctx, string(tokenHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token not found")
		return nil, errInvalidRefresh
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if !sess.Usable(now) {
		slog.WarnContext(ctx, "refresh token revoked or expired", "session_id", sess.ID)
		return nil, errInvalidRefresh
	}

	acc, err := s.repoDB.GetAccountByID(ctx, sess.AccountID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token owner not found", "user_id", sess.AccountID)
		return nil, errInvalidRefresh
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "user_id", sess.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	err = s.repoDB.RevokeSession(ctx, sess.TokenHash, now)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token already rotated", "session_id", sess.ID)
		return nil, errInvalidRefresh
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo revoke session", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return s.issueTokens(ctx, *acc)
}

var errInvalidRefresh = goerror.NewBusiness("Invalid or expired refresh token", goerror.CodeUnauthorized)
