package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
)

// Verify checks code against the live entry for identifier and returns its
// short token. The entry stays in place, so repeated calls succeed until it
// expires or is redeemed.
func (l *Ledger) Verify(ctx context.Context, identifier string, purpose entity.Purpose, code string) (_ string, err error) {
	ctx, span := l.startSpan(ctx, "Verify", purpose)
	defer func() { l.endSpan(span, err) }()

	codeHash, err := l.digest(kindCode, identifier, purpose, code)
	if err != nil {
		return "", err
	}

	e, err := l.find(ctx, Query{Identifier: identifier, Purpose: purpose, CodeHash: codeHash})
	if err != nil {
		return "", err
	}

	if e.Expired(l.clock.Now()) {
		if err := l.delete(ctx, e.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return "", err
		}
		slog.WarnContext(ctx, "otp entry expired on verify", "otp_id", e.ID, "purpose", purpose)
		return "", ErrExpired
	}

	token, err := l.sealer.Open(e.ShortTokenSealed, scope(identifier, purpose))
	if err != nil {
		return "", fmt.Errorf("ledger: open token: %w", err)
	}

	return string(token), nil
}

// Redeem consumes the entry matching shortToken. then, when non-nil, runs in
// the same transaction as the delete.
func (l *Ledger) Redeem(ctx context.Context, identifier string, purpose entity.Purpose, shortToken string, then Consumer) (err error) {
	ctx, span := l.startSpan(ctx, "Redeem", purpose)
	defer func() { l.endSpan(span, err) }()

	tokenHash, err := l.digest(kindToken, identifier, purpose, shortToken)
	if err != nil {
		return err
	}

	return l.consume(ctx, Query{Identifier: identifier, Purpose: purpose, TokenHash: tokenHash}, then)
}

// RedeemByCode consumes the entry matching code. It is Redeem for flows that
// never hand out the short token.
func (l *Ledger) RedeemByCode(ctx context.Context, identifier string, purpose entity.Purpose, code string, then Consumer) (err error) {
	ctx, span := l.startSpan(ctx, "RedeemByCode", purpose)
	defer func() { l.endSpan(span, err) }()

	codeHash, err := l.digest(kindCode, identifier, purpose, code)
	if err != nil {
		return err
	}

	return l.consume(ctx, Query{Identifier: identifier, Purpose: purpose, CodeHash: codeHash}, then)
}

// consume finds, checks and deletes one entry under a row lock. Of two
// concurrent callers for the same entry, the second finds nothing.
func (l *Ledger) consume(ctx context.Context, q Query, then Consumer) error {
	q.ForUpdate = true

	var expired bool
	err := l.store.Atomic(ctx, func(ctx context.Context) error {
		e, err := l.find(ctx, q)
		if err != nil {
			return err
		}

		if e.Expired(l.clock.Now()) {
			expired = true
			slog.WarnContext(ctx, "otp entry expired on redeem", "otp_id", e.ID, "purpose", e.Purpose)
			return l.delete(ctx, e.ID)
		}

		if then != nil {
			if err := then(ctx, *e); err != nil {
				return err
			}
		}

		return l.delete(ctx, e.ID)
	})
	if err != nil {
		return err
	}
	if expired {
		return ErrExpired
	}

	return nil
}
