package contracts

import (
	"context"
	"time"
)

type RateLimitDecision struct {
	Allowed bool
	ResetAt time.Time
}

// RateLimitStore applies the reset-window rule atomically for one key: a missing or
// expired entry restarts at count 1, a full entry denies without counting, anything
// else is counted and allowed.
type RateLimitStore interface {
	CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*RateLimitDecision, error)
}

type RateLimiter interface {
	CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*RateLimitDecision, error)
}
