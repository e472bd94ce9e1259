package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/app/services/shared/ratelimiter"
	"jazaidoc-service/internal/app/services/shared/session"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(limiter contracts.RateLimiter) (*Middlewares, contracts.SessionTokenService) {
	internalConfig := &config.InternalConfig{
		App:       config.App{MaxRequests: 100, RequestBodyLimitInMegabyte: 1},
		Session:   config.Session{Secret: "middleware-secret"},
		RateLimit: config.RateLimit{LoginMaxAttempts: 5, LoginWindowInMinutes: 15},
	}
	tokens := session.NewSessionTokenService(internalConfig)
	return NewMiddlewares(zap.NewNop(), tokens, limiter, metrics.NewMetrics("jazaidoc"), internalConfig), tokens
}

func headerWithToken(token string) http.Header {
	header := http.Header{}
	if token != "" {
		header.Set(constvars.HeaderSessionToken, token)
	}
	return header
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	return customErr.StatusCode
}

func TestRequireAuth(t *testing.T) {
	m, tokens := newTestMiddlewares(nil)
	doctor := models.SessionPayload{Login: "ivanova", Role: constvars.RoleDoctor, Name: "Иванова"}
	token, err := tokens.Sign(doctor)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := m.RequireAuth(headerWithToken(""))
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("tampered token", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		if tampered == token {
			tampered = token[:len(token)-2] + "yy"
		}
		_, err := m.RequireAuth(headerWithToken(tampered))
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("valid doctor token", func(t *testing.T) {
		payload, err := m.RequireAuth(headerWithToken(token))
		require.NoError(t, err)
		assert.Equal(t, doctor, *payload)
	})
}

func TestRequireAdmin(t *testing.T) {
	m, tokens := newTestMiddlewares(nil)
	doctorToken, err := tokens.Sign(models.SessionPayload{Login: "ivanova", Role: constvars.RoleDoctor})
	require.NoError(t, err)
	adminToken, err := tokens.Sign(models.SessionPayload{Login: "admin", Role: constvars.RoleAdmin, Name: "Админ"})
	require.NoError(t, err)

	_, err = m.RequireAdmin(headerWithToken(doctorToken))
	assert.Equal(t, constvars.StatusForbidden, statusOf(t, err))

	_, err = m.RequireAdmin(headerWithToken(""))
	assert.Equal(t, constvars.StatusUnauthorized, statusOf(t, err))

	payload, err := m.RequireAdmin(headerWithToken(adminToken))
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Login)
}

func TestAuthenticate_StoresPayload(t *testing.T) {
	m, tokens := newTestMiddlewares(nil)
	token, err := tokens.Sign(models.SessionPayload{Login: "ivanova", Role: constvars.RoleDoctor})
	require.NoError(t, err)

	var seen *models.SessionPayload
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionPayloadFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/credits", nil)
	req.Header.Set(constvars.HeaderSessionToken, token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ivanova", seen.Login)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/credits", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, constvars.ErrCodeUnauthorized, body["error_code"])
	assert.Equal(t, false, body["success"])
}

func TestLoginRateLimit(t *testing.T) {
	clock := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	store := ratelimiter.NewMemoryStoreWithClock(func() time.Time { return clock })
	m, _ := newTestMiddlewares(ratelimiter.NewLimiter(store, constvars.RateLimitScopeLogin, nil, zap.NewNop()))

	calls := 0
	handler := m.LoginRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	attempt := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, attempt("10.0.0.1:5000").Code, "attempt %d", i+1)
	}

	limited := attempt("10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	retryAfter, err := strconv.Atoi(limited.Header().Get(constvars.HeaderRetryAfter))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.Equal(t, 5, calls)

	assert.Equal(t, http.StatusOK, attempt("10.0.0.2:5000").Code, "other clients are counted separately")
}

type failingLimiter struct{}

func (failingLimiter) CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*contracts.RateLimitDecision, error) {
	return nil, exceptions.ErrRateLimitStore(errors.New("redis down"))
}

func TestLoginRateLimit_StoreFailureRefusesLogin(t *testing.T) {
	m, _ := newTestMiddlewares(failingLimiter{})
	handler := m.LoginRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("login must not run without a limiter decision")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	m, _ := newTestMiddlewares(nil)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	m, _ := newTestMiddlewares(nil)
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id", seen)
}
