package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
)

// issueTokens signs an access token and opens a refresh session. Only the
// HMAC of the refresh token is stored.
func (s *Usecase) issueTokens(ctx context.Context, acc entity.Account) (*entity.TokenPair, error) {
	access, err := s.jwt.Generate(jwt.Subject{UserID: acc.ID, Username: acc.Username, Email: acc.Email})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refresh := s.token.Generate()
	refreshHash, err := s.hmac.Hash(refresh)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "user_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if err := s.repoDB.CreateSession(ctx, entity.Session{
		ID:        s.uid.Generate(),
		AccountID: acc.ID,
		TokenHash: string(refreshHash),
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create session", "user_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Usecase) refreshTTL() time.Duration {
	if d := s.cfg.GetDay("modules.identity.refresh_token_ttl_days"); d > 0 {
		return d
	}
	return 7 * 24 * time.Hour
}
