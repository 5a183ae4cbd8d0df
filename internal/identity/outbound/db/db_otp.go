package db

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/ledger"
)

var errOTPQueryUnbound = errors.New("db: otp query needs a code or short token hash")

func (s *DB) InsertOTP(ctx context.Context, e entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "InsertOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.q(ctx).Exec(ctx, `
		INSERT INTO identity_otps (
			id, identifier, purpose, account_id, code_hash, short_token_hash,
			short_token_sealed, expires_at, created_at
		) VALUES ($1, $2, $3, NULLIF($4::BIGINT, 0), $5, $6, $7, $8, $9)`,
		e.ID, e.Identifier, e.Purpose.String(), e.AccountID, e.CodeHash, e.ShortTokenHash,
		e.ShortTokenSealed, e.ExpiresAt, e.CreatedAt)

	return s.mapError(err)
}

// FindOTP returns the newest entry matching q. With q.ForUpdate the row stays
// locked until the surrounding transaction ends.
func (s *DB) FindOTP(ctx context.Context, q ledger.Query) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "FindOTP")
	defer func() { s.endSpan(span, err) }()

	column, hash := "code_hash", q.CodeHash
	if q.TokenHash != "" {
		column, hash = "short_token_hash", q.TokenHash
	}
	if hash == "" {
		return nil, errOTPQueryUnbound
	}

	sql := `
		SELECT id, identifier, purpose, COALESCE(account_id, 0), code_hash,
			short_token_hash, short_token_sealed, expires_at, created_at
		FROM identity_otps
		WHERE identifier = $1 AND purpose = $2 AND ` + column + ` = $3
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	if q.ForUpdate {
		sql += ` FOR UPDATE`
	}

	var (
		e       entity.OTP
		purpose string
	)
	err = s.q(ctx).QueryRow(ctx, sql, q.Identifier, q.Purpose.String(), hash).Scan(
		&e.ID, &e.Identifier, &purpose, &e.AccountID, &e.CodeHash,
		&e.ShortTokenHash, &e.ShortTokenSealed, &e.ExpiresAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	e.Purpose = entity.Purpose(purpose)

	return &e, nil
}

func (s *DB) DeleteOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTP")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.q(ctx).Exec(ctx, `DELETE FROM identity_otps WHERE id = $1`, id))
	return err
}

func (s *DB) DeleteExpiredOTPs(ctx context.Context, before time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredOTPs")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM identity_otps WHERE expires_at <= $1`, before)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
