package ratelimiter

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/pkg/constvars"
	"time"
)

// checkAndConsumeScript returns {allowed, pttl}. A missing key starts a new
// window; a full window is denied without counting.
const checkAndConsumeScript = `
local current = redis.call("GET", KEYS[1])
if not current then
	redis.call("SET", KEYS[1], 1, "PX", ARGV[2])
	return {1, tonumber(ARGV[2])}
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
	ttl = tonumber(ARGV[2])
end
if tonumber(current) >= tonumber(ARGV[1]) then
	return {0, ttl}
end
redis.call("INCR", KEYS[1])
return {1, ttl}
`

// RedisStore shares counters between instances. Expiry is delegated to redis,
// so no sweep is needed.
type RedisStore struct {
	redisRepo contracts.RedisRepository
	now       func() time.Time
}

func NewRedisStore(redisRepo contracts.RedisRepository) *RedisStore {
	return &RedisStore{redisRepo: redisRepo, now: time.Now}
}

func (s *RedisStore) CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*contracts.RateLimitDecision, error) {
	result, err := s.redisRepo.RunScript(ctx, checkAndConsumeScript, []string{constvars.RateLimitRedisKeyPrefix + key}, maxAttempts, window.Milliseconds())
	if err != nil {
		return nil, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script result %v", result)
	}
	allowed, okAllowed := values[0].(int64)
	ttl, okTTL := values[1].(int64)
	if !okAllowed || !okTTL {
		return nil, fmt.Errorf("unexpected rate limit script result %v", result)
	}

	return &contracts.RateLimitDecision{
		Allowed: allowed == 1,
		ResetAt: s.now().Add(time.Duration(ttl) * time.Millisecond),
	}, nil
}
