// Package ratelimit throttles abusive callers of code-issuing endpoints with
// a fixed-window counter shared across instances through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Result describes the window a key currently sits in.
type Result struct {
	Limit     int64
	Remaining int64
	Reset     time.Time
	Reached   bool
}

// Limiter counts hits per key.
type Limiter interface {
	Take(ctx context.Context, key string) (Result, error)
}

// Ulule implements Limiter on github.com/ulule/limiter.
type Ulule struct {
	lim *limiter.Limiter
}

// New builds a limiter from a formatted rate such as "5-M" (five per minute).
// A nil client keeps counters in process memory.
func New(rate string, client redis.UniversalClient, prefix string) (*Ulule, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: parse rate %q: %w", rate, err)
	}

	opts := limiter.StoreOptions{
		Prefix:          prefix,
		MaxRetry:        limiter.DefaultMaxRetry,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}
	if opts.Prefix == "" {
		opts.Prefix = "ratelimit"
	}

	var store limiter.Store
	if client == nil {
		store = memory.NewStoreWithOptions(opts)
	} else {
		store, err = sredis.NewStoreWithOptions(client, opts)
		if err != nil {
			return nil, fmt.Errorf("ratelimit: redis store: %w", err)
		}
	}

	return &Ulule{lim: limiter.New(store, r)}, nil
}

// Take records one hit for key.
func (u *Ulule) Take(ctx context.Context, key string) (Result, error) {
	lc, err := u.lim.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Limit:     lc.Limit,
		Remaining: lc.Remaining,
		Reset:     time.Unix(lc.Reset, 0),
		Reached:   lc.Reached,
	}, nil
}
