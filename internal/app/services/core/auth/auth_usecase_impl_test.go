package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/services/core/users"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/app/services/shared/rowstore"
	"jazaidoc-service/internal/app/services/shared/session"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo    contracts.UserRepository
	tokens  contracts.SessionTokenService
	metrics *metrics.Metrics
	usecase contracts.AuthUsecase
}

// newFixture seeds a memory row store; wrap, when set, decorates it before the
// repository sees it.
func newFixture(t *testing.T, wrap func(contracts.RowStore) contracts.RowStore) *fixture {
	ctx := context.Background()
	bcryptHash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	seed := rowstore.NewMemoryRowStore()
	require.NoError(t, seed.EnsureSheet(ctx, "main", constvars.SheetUsers, constvars.UsersSheetHeader))
	require.NoError(t, seed.AppendRow(ctx, "main", constvars.SheetUsers, []string{"ivanova", bcryptHash, "Иванова А.", "Невролог", "doctor", "true", "clinic-1"}))
	require.NoError(t, seed.AppendRow(ctx, "main", constvars.SheetUsers, []string{"Petrov", utils.LegacyPasswordDigest("old-secret"), "Петров", "", "", "", ""}))
	require.NoError(t, seed.AppendRow(ctx, "main", constvars.SheetUsers, []string{"retired", bcryptHash, "Сидоров", "", "doctor", "false", ""}))
	require.NoError(t, seed.AppendRow(ctx, "main", constvars.SheetUsers, []string{"frozen", bcryptHash, "Смирнова", "", "doctor", "FALSE", "clinic-1"}))

	var store contracts.RowStore = seed
	if wrap != nil {
		store = wrap(seed)
	}

	repo := users.NewUserRowStoreRepository(store, "main")
	tokens := session.NewSessionTokenService(&config.InternalConfig{Session: config.Session{Secret: "test-secret"}})
	m := metrics.NewMetrics("jazaidoc")
	return &fixture{
		repo:    repo,
		tokens:  tokens,
		metrics: m,
		usecase: NewAuthUsecase(repo, tokens, m, zap.NewNop()),
	}
}

func assertCustomError(t *testing.T, err error, statusCode int, errorCode string) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
	assert.Equal(t, errorCode, customErr.ErrorCode)
}

func TestAuthUsecase_Login(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	t.Run("bcrypt account", func(t *testing.T) {
		response, err := f.usecase.Login(ctx, &requests.Login{Username: "IVANOVA", Password: "correct-horse"})
		require.NoError(t, err)

		assert.Equal(t, "ivanova", response.User.Login)
		assert.Equal(t, "Невролог", response.User.Specialty)
		payload, ok := f.tokens.Verify(response.Token)
		require.True(t, ok)
		assert.Equal(t, "ivanova", payload.Login)
		assert.Equal(t, constvars.RoleDoctor, payload.Role)
		assert.Equal(t, "Иванова А.", payload.Name)
	})

	t.Run("unknown login", func(t *testing.T) {
		_, err := f.usecase.Login(ctx, &requests.Login{Username: "ghost", Password: "correct-horse"})
		assertCustomError(t, err, constvars.StatusUnauthorized, constvars.ErrCodeInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.usecase.Login(ctx, &requests.Login{Username: "ivanova", Password: "wrong"})
		assertCustomError(t, err, constvars.StatusUnauthorized, constvars.ErrCodeInvalidCredentials)
	})

	t.Run("disabled account with the right password", func(t *testing.T) {
		_, err := f.usecase.Login(ctx, &requests.Login{Username: "retired", Password: "correct-horse"})
		assertCustomError(t, err, constvars.StatusForbidden, constvars.ErrCodeAccountDisabled)
	})

	t.Run("account disabled by hand in the sheet", func(t *testing.T) {
		_, err := f.usecase.Login(ctx, &requests.Login{Username: "frozen", Password: "correct-horse"})
		assertCustomError(t, err, constvars.StatusForbidden, constvars.ErrCodeAccountDisabled)
	})

	t.Run("disabled account with a wrong password", func(t *testing.T) {
		_, err := f.usecase.Login(ctx, &requests.Login{Username: "retired", Password: "wrong"})
		assertCustomError(t, err, constvars.StatusUnauthorized, constvars.ErrCodeInvalidCredentials)
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginResultSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginResultFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginResultDisabled)))
}

func TestAuthUsecase_LoginMigratesLegacyHash(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	response, err := f.usecase.Login(ctx, &requests.Login{Username: "petrov", Password: "old-secret"})
	require.NoError(t, err)
	assert.Equal(t, constvars.RoleDoctor, response.User.Role, "an empty role signs in as doctor")
	_, ok := f.tokens.Verify(response.Token)
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		user, err := f.repo.FindByLogin(ctx, "petrov")
		return err == nil && user != nil && !utils.IsLegacyPasswordHash(user.PasswordHash)
	}, 5*time.Second, 20*time.Millisecond)

	user, err := f.repo.FindByLogin(ctx, "petrov")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword("old-secret", user.PasswordHash))
	assert.Equal(t, "Петров", user.Name, "only the hash cell changes")

	_, err = f.usecase.Login(ctx, &requests.Login{Username: "petrov", Password: "old-secret"})
	assert.NoError(t, err, "the migrated account still signs in")
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(f.metrics.LegacyHashMigrationsTotal.WithLabelValues(metrics.MigrationResultSuccess)) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

type failingUpdateStore struct {
	contracts.RowStore
}

func (failingUpdateStore) UpdateCell(ctx context.Context, container, cellRef, value string) error {
	return exceptions.ErrRowStore(errors.New("quota exceeded"), "UpdateCell")
}

func TestAuthUsecase_LoginSurvivesFailedMigration(t *testing.T) {
	f := newFixture(t, func(store contracts.RowStore) contracts.RowStore {
		return failingUpdateStore{RowStore: store}
	})
	ctx := context.Background()

	response, err := f.usecase.Login(ctx, &requests.Login{Username: "petrov", Password: "old-secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(f.metrics.LegacyHashMigrationsTotal.WithLabelValues(metrics.MigrationResultFailure)) == 1
	}, 5*time.Second, 20*time.Millisecond)

	user, err := f.repo.FindByLogin(ctx, "petrov")
	require.NoError(t, err)
	assert.True(t, utils.IsLegacyPasswordHash(user.PasswordHash))
}

type unreachableStore struct {
	contracts.RowStore
}

func (unreachableStore) ReadRange(ctx context.Context, container, rangeRef string) ([][]string, error) {
	return nil, exceptions.ErrRowStore(errors.New("connection reset"), "ReadRange")
}

func TestAuthUsecase_LoginStoreUnavailable(t *testing.T) {
	repo := users.NewUserRowStoreRepository(unreachableStore{}, "main")
	tokens := session.NewSessionTokenService(&config.InternalConfig{Session: config.Session{Secret: "test-secret"}})
	uc := NewAuthUsecase(repo, tokens, nil, zap.NewNop())

	_, err := uc.Login(context.Background(), &requests.Login{Username: "ivanova", Password: "correct-horse"})

	assertCustomError(t, err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable)
}
