// Package idempotency guards side-effecting requests with a Redis backed
// state machine keyed by a client supplied idempotency key.
//
// A key moves from absent to in_progress when an operation starts and then to
// completed or failed. Repeated requests carrying the same key observe that
// state instead of running the operation twice.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid idempotency state")
)

// State is the stored lifecycle stage of a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

func (s State) err() error {
	switch s {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	default:
		return nil
	}
}

// Idempotency runs fn at most once per key within the state TTL.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress marker survives a crash.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) {
		if d > 0 {
			o.lockDuration = d
		}
	}
}

// WithStateTTL sets how long completed and failed markers are remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) {
		if d > 0 {
			o.stateTTL = d
		}
	}
}

// StateTracker implements Idempotency on Redis.
type StateTracker struct {
	client redis.Cmdable
	prefix string
}

// New returns a StateTracker storing keys under prefix.
func New(client redis.Cmdable, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &StateTracker{client: client, prefix: prefix}
}

// Acquire marks key in progress when it is absent and otherwise reports the
// state already stored.
func (s *StateTracker) Acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		ok, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lock).Result()
		if err != nil {
			return StateNone, err
		}
		if ok {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue // expired between SETNX and GET
		}
		if err != nil {
			return StateNone, err
		}

		switch st := State(current); st {
		case StateInProgress, StateCompleted, StateFailed:
			return st, nil
		default:
			return StateNone, ErrInvalidState
		}
	}

	return StateNone, ErrInvalidState
}

func (s *StateTracker) mark(ctx context.Context, key string, st State, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, st.String(), ttl).Err()
}

// Exec runs fn when key has not been seen and records the outcome.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockDuration: time.Minute, stateTTL: 24 * time.Hour}
	for _, opt := range opts {
		opt(&o)
	}

	st, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}
	if err := st.err(); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		// release validation-style failures so a corrected retry can proceed
		if delErr := s.client.Del(context.WithoutCancel(ctx), s.prefix+key).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return s.mark(context.WithoutCancel(ctx), key, StateCompleted, o.stateTTL)
}
