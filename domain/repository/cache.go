package repository

import (
	"context"
	"time"

	"vidnotes/domain/model"
)

// ISuggestionCache is a generic TTL key-value cache. It carries no domain
// knowledge; keys and TTLs are chosen by the caller.
type ISuggestionCache interface {
	// Get returns the cached payload, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Forget(ctx context.Context, key string) error
	// Remember returns the cached payload if present, otherwise invokes
	// producer, stores its result with the given TTL and returns it.
	// Concurrent callers may both invoke producer on a miss; no
	// single-flight guarantee is made, only coherence after the fact.
	Remember(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) ([]byte, error)) ([]byte, error)
}

// IRefreshQuota enforces the daily cap on explicit suggestion refreshes.
// Premium users are unlimited and never touch the counter. The counter
// expires at the end of the current local calendar day. Read-then-write is
// not compare-and-swap; an occasional off-by-one overrun under concurrency
// is tolerated.
type IRefreshQuota interface {
	Remaining(ctx context.Context, user model.User) (model.RefreshAllowance, error)
	CanRefresh(ctx context.Context, user model.User) (bool, error)
	Increment(ctx context.Context, user model.User) error
}
