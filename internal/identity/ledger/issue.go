package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
)

type IssueInput struct {
	Identifier string
	Purpose    entity.Purpose
	AccountID  int64
}

// Issued carries the only copies of the plaintext code and short token.
type Issued struct {
	ID         int64
	Code       string
	ShortToken string
	ExpiresAt  time.Time
}

// Issue creates a fresh entry. Older entries for the same identifier are left
// alone; they stop matching once the user holds the newer code.
func (l *Ledger) Issue(ctx context.Context, in IssueInput) (_ *Issued, err error) {
	ctx, span := l.startSpan(ctx, "Issue", in.Purpose)
	defer func() { l.endSpan(span, err) }()

	if in.Identifier == "" || !in.Purpose.Valid() {
		return nil, ErrInvalidEntry
	}

	code, err := l.code.Generate()
	if err != nil {
		return nil, fmt.Errorf("ledger: generate code: %w", err)
	}
	token := l.token.Generate()

	codeHash, err := l.digest(kindCode, in.Identifier, in.Purpose, code)
	if err != nil {
		return nil, err
	}
	tokenHash, err := l.digest(kindToken, in.Identifier, in.Purpose, token)
	if err != nil {
		return nil, err
	}

	sealed, err := l.sealer.Seal([]byte(token), scope(in.Identifier, in.Purpose))
	if err != nil {
		return nil, fmt.Errorf("ledger: seal token: %w", err)
	}

	now := l.clock.Now()
	e := entity.OTP{
		ID:               l.uid.Generate(),
		Identifier:       in.Identifier,
		Purpose:          in.Purpose,
		AccountID:        in.AccountID,
		CodeHash:         codeHash,
		ShortTokenHash:   tokenHash,
		ShortTokenSealed: sealed,
		ExpiresAt:        now.Add(l.ttl),
		CreatedAt:        now,
	}
	if err := l.store.InsertOTP(ctx, e); err != nil {
		return nil, fmt.Errorf("ledger: insert: %w", err)
	}

	return &Issued{ID: e.ID, Code: code, ShortToken: token, ExpiresAt: e.ExpiresAt}, nil
}
