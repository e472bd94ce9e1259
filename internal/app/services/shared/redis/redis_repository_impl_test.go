package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisRepository(client).(*redisRepository)
}

func TestRedisRepository_TrySetNX(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()

	acquired, err := repo.TrySetNX(ctx, "lock", "owner-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TrySetNX(ctx, "lock", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "second owner must not acquire a held key")

	value, err := repo.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, "owner-a", value)

	mr.FastForward(2 * time.Minute)

	acquired, err = repo.TrySetNX(ctx, "lock", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "expired key can be taken again")
}

func TestRedisRepository_Get_Missing(t *testing.T) {
	_, repo := setupTestRedis(t)

	value, err := repo.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRedisRepository_CompareAndDelete(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("lock", "owner-a"))

	deleted, err := repo.CompareAndDelete(ctx, "lock", "owner-b")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, mr.Exists("lock"))

	deleted, err = repo.CompareAndDelete(ctx, "lock", "owner-a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists("lock"))
}

func TestRedisRepository_RunScript(t *testing.T) {
	_, repo := setupTestRedis(t)

	result, err := repo.RunScript(context.Background(), `return redis.call("INCRBY", KEYS[1], ARGV[1])`, []string{"counter"}, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result)
}
