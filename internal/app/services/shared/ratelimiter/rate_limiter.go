package ratelimiter

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// Limiter applies reset-window limits over an injectable store.
type Limiter struct {
	store   contracts.RateLimitStore
	scope   string
	metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewLimiter(store contracts.RateLimitStore, scope string, m *metrics.Metrics, logger *zap.Logger) contracts.RateLimiter {
	return &Limiter{
		store:   store,
		scope:   scope,
		metrics: m,
		Log:     logger,
	}
}

func (l *Limiter) CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*contracts.RateLimitDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	decision, err := l.store.CheckAndConsume(ctx, key, maxAttempts, window)
	if err != nil {
		l.Log.Error("Limiter.CheckAndConsume error calling store.CheckAndConsume",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRateLimitKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	if !decision.Allowed {
		l.metrics.RecordRateLimited(l.scope)
		l.Log.Warn("Limiter.CheckAndConsume limit reached",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRateLimitKey, key),
			zap.Time("reset_at", decision.ResetAt),
		)
	}

	return decision, nil
}
