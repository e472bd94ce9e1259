package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) CompareAndDelete(ctx context.Context, key string, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) RunScript(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	called := m.Called(ctx, script, keys, args)
	return called.Get(0), called.Error(1)
}

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("acquired returns generated lock value", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.AnythingOfType("string"), time.Second).Return(true, nil)
		svc := NewLockService(repo, zap.NewNop())

		acquired, value, err := svc.TryLock(ctx, "k", time.Second)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
		repo.AssertExpectations(t)
	})

	t.Run("held by someone else", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.AnythingOfType("string"), time.Second).Return(false, nil)
		svc := NewLockService(repo, zap.NewNop())

		acquired, value, err := svc.TryLock(ctx, "k", time.Second)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("store failure surfaces as upstream error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.AnythingOfType("string"), time.Second).Return(false, errors.New("connection refused"))
		svc := NewLockService(repo, zap.NewNop())

		_, _, err := svc.TryLock(ctx, "k", time.Second)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeUpstreamUnavailable, customErr.ErrorCode)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("owner releases", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "v1").Return(true, nil)
		svc := NewLockService(repo, zap.NewNop())

		assert.NoError(t, svc.Unlock(ctx, "k", "v1"))
	})

	t.Run("stale owner is rejected", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("CompareAndDelete", ctx, "k", "stale").Return(false, nil)
		svc := NewLockService(repo, zap.NewNop())

		err := svc.Unlock(ctx, "k", "stale")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrDevRedisUnlock+": lock k is not held by stale", customErr.DevMessage)
	})
}
