package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
)

func (s *DB) CreateSession(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer func() { s.endSpan(span, err) }()

	_, err = s.q(ctx).Exec(ctx, `
		INSERT INTO identity_sessions (id, account_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		sess.ID, sess.AccountID, sess.TokenHash, sess.ExpiresAt, sess.CreatedAt)

	return s.mapError(err)
}

func (s *DB) GetSessionByTokenHash(ctx context.Context, tokenHash string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "GetSessionByTokenHash")
	defer func() { s.endSpan(span, err) }()

	var sess entity.Session
	err = s.q(ctx).QueryRow(ctx, `
		SELECT id, account_id, token_hash, expires_at, revoked_at, created_at
		FROM identity_sessions WHERE token_hash = $1`, tokenHash,
	).Scan(&sess.ID, &sess.AccountID, &sess.TokenHash, &sess.ExpiresAt, &sess.RevokedAt, &sess.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sess, nil
}

// RevokeSession revokes a live session. It returns goerror.ErrNotFound when
// the token is unknown or was already revoked, which makes rotation single use.
func (s *DB) RevokeSession(ctx context.Context, tokenHash string, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeSession")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.q(ctx).Exec(ctx,
		`UPDATE identity_sessions SET revoked_at = $2 WHERE token_hash = $1 AND revoked_at IS NULL`,
		tokenHash, at))
	return err
}

func (s *DB) RevokeAccountSessions(ctx context.Context, accountID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAccountSessions")
	defer func() { s.endSpan(span, err) }()

	_, err = s.q(ctx).Exec(ctx,
		`UPDATE identity_sessions SET revoked_at = $2 WHERE account_id = $1 AND revoked_at IS NULL`,
		accountID, at)
	return s.mapError(err)
}
