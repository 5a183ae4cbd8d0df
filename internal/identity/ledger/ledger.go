// Package ledger keeps the one-time codes and short tokens that prove control
// of an identifier. Entries live in a durable Store; nothing is cached in
// process. Expiry is checked lazily on read and an expired entry is deleted
// before the caller sees ErrExpired.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/otp"
	"github.com/shandysiswandi/bazaar/internal/pkg/sealer"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL is how long an issued entry stays valid.
const DefaultTTL = 10 * time.Minute

var (
	// ErrNotFound means no live entry matched. A wrong code and an unknown
	// identifier are deliberately indistinguishable.
	ErrNotFound = errors.New("ledger: no matching entry")

	// ErrExpired means an entry matched but its validity window had passed.
	// The entry is gone by the time this is returned.
	ErrExpired = errors.New("ledger: entry expired")

	// ErrInvalidEntry is returned by Issue for an empty identifier or an
	// unknown purpose.
	ErrInvalidEntry = errors.New("ledger: identifier and purpose are required")
)

// Query selects the most recent entry for an identifier and purpose matching
// either CodeHash or TokenHash. ForUpdate locks the row for the surrounding
// Atomic call.
type Query struct {
	Identifier string
	Purpose    entity.Purpose
	CodeHash   string
	TokenHash  string
	ForUpdate  bool
}

// Store is the durable home of ledger entries.
//
// FindOTP and DeleteOTP return goerror.ErrNotFound when no row matches.
// Atomic runs fn in a single transaction; every Store call made with the
// context handed to fn joins that transaction.
type Store interface {
	InsertOTP(ctx context.Context, e entity.OTP) error
	FindOTP(ctx context.Context, q Query) (*entity.OTP, error)
	DeleteOTP(ctx context.Context, id int64) error
	DeleteExpiredOTPs(ctx context.Context, before time.Time) (int64, error)
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

// Consumer runs inside the redeem transaction, after the entry has been found
// live and before it is deleted. Returning an error keeps the entry.
type Consumer func(ctx context.Context, e entity.OTP) error

type Dependency struct {
	Store      Store
	Code       otp.Generator
	Token      uid.StringID
	UID        uid.NumberID
	HMAC       hash.Hash
	Sealer     sealer.Sealer
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	TTL        time.Duration
}

type Ledger struct {
	store  Store
	code   otp.Generator
	token  uid.StringID
	uid    uid.NumberID
	hmac   hash.Hash
	sealer sealer.Sealer
	clock  clock.Clocker
	ins    instrument.Instrumentation
	ttl    time.Duration
}

func New(dep Dependency) *Ledger {
	ttl := dep.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Ledger{
		store:  dep.Store,
		code:   dep.Code,
		token:  dep.Token,
		uid:    dep.UID,
		hmac:   dep.HMAC,
		sealer: dep.Sealer,
		clock:  dep.Clock,
		ins:    dep.Instrument,
		ttl:    ttl,
	}
}

// TTL reports the validity window given to new entries.
func (l *Ledger) TTL() time.Duration {
	return l.ttl
}

func (l *Ledger) startSpan(ctx context.Context, name string, purpose entity.Purpose) (context.Context, trace.Span) {
	return l.ins.Tracer("identity.ledger").Start(ctx, name,
		trace.WithAttributes(attribute.String("otp.purpose", purpose.String())))
}

func (l *Ledger) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const (
	kindCode  = "code"
	kindToken = "token"
)

// digest binds a secret to its identifier and purpose so the same code issued
// to two people, or for two flows, never hashes alike.
func (l *Ledger) digest(kind, identifier string, purpose entity.Purpose, secret string) (string, error) {
	sum, err := l.hmac.Hash(kind + "\x00" + identifier + "\x00" + purpose.String() + "\x00" + secret)
	if err != nil {
		return "", fmt.Errorf("ledger: hash %s: %w", kind, err)
	}
	return string(sum), nil
}

func scope(identifier string, purpose entity.Purpose) sealer.Scope {
	return sealer.Scope{Identifier: identifier, Purpose: purpose.String()}
}

func (l *Ledger) find(ctx context.Context, q Query) (*entity.OTP, error) {
	e, err := l.store.FindOTP(ctx, q)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: find: %w", err)
	}
	return e, nil
}

func (l *Ledger) delete(ctx context.Context, id int64) error {
	err := l.store.DeleteOTP(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("ledger: delete: %w", err)
	}
	return nil
}

// Discard removes an entry by id. It is the compensation step when a code
// could not be delivered; an entry that is already gone is not an error.
func (l *Ledger) Discard(ctx context.Context, id int64) (err error) {
	ctx, span := l.ins.Tracer("identity.ledger").Start(ctx, "Discard")
	defer func() { l.endSpan(span, err) }()

	if err := l.delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// Sweep deletes every entry already past its expiry and reports how many
// were removed. Lookups never depend on it having run.
func (l *Ledger) Sweep(ctx context.Context) (_ int64, err error) {
	ctx, span := l.ins.Tracer("identity.ledger").Start(ctx, "Sweep")
	defer func() { l.endSpan(span, err) }()

	n, err := l.store.DeleteExpiredOTPs(ctx, l.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("ledger: sweep: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "swept expired otp entries", "count", n)
	}
	return n, nil
}
