package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/bazaar/internal/identity/entity"
)

const accountColumns = `id, username, email, password_hash,
	COALESCE(phone_number, ''), COALESCE(country, ''), COALESCE(province, ''),
	COALESCE(city, ''), COALESCE(postal_code, ''), COALESCE(full_address, ''),
	email_verified_at, is_setup_complete, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash,
		&a.PhoneNumber, &a.Country, &a.Province,
		&a.City, &a.PostalCode, &a.FullAddress,
		&a.EmailVerifiedAt, &a.IsSetupComplete, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *DB) ExistsAccountByEmail(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.q(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM identity_accounts WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) ExistsAccountByUsername(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.q(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM identity_accounts WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.q(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM identity_accounts WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.q(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM identity_accounts WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.q(ctx).Exec(ctx, `
		INSERT INTO identity_accounts (
			id, username, email, password_hash, phone_number, country, province,
			city, postal_code, full_address, email_verified_at, is_setup_complete,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13, $14
		)`,
		acc.ID, acc.Username, acc.Email, acc.PasswordHash, acc.PhoneNumber, acc.Country, acc.Province,
		acc.City, acc.PostalCode, acc.FullAddress, acc.EmailVerifiedAt, acc.IsSetupComplete,
		acc.CreatedAt, acc.UpdatedAt,
	)

	return s.mapError(err)
}

func (s *DB) UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountPassword")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.q(ctx).Exec(ctx,
		`UPDATE identity_accounts SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash))
	return err
}

func (s *DB) MarkAccountEmailVerified(ctx context.Context, id int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "MarkAccountEmailVerified")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.q(ctx).Exec(ctx, `
		UPDATE identity_accounts
		SET email_verified_at = COALESCE(email_verified_at, $2), updated_at = NOW()
		WHERE id = $1`,
		id, at))
	return err
}
