package utils

import (
	"errors"
	"jazaidoc-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildErrorResponse(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Custom Error", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		rr := httptest.NewRecorder()

		BuildErrorResponse(logger, rr, exceptions.ErrQuotaExhausted(nil, "clinic-1"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "QUOTA_EXHAUSTED", body["error_code"])
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, body, "dev_message", "dev detail is hidden in production")
	})

	t.Run("Custom Error In Development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		rr := httptest.NewRecorder()

		BuildErrorResponse(logger, rr, exceptions.ErrSessionTokenMissing(nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "UNAUTHORIZED", body["error_code"])
		assert.Equal(t, "session token missing", body["dev_message"])
	})

	t.Run("Plain Error", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(logger, rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_ERROR", body["error_code"])
	})
}

func TestBuildSuccessResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	BuildSuccessResponse(rr, http.StatusOK, "ok", map[string]int{"remainingCredits": 6})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"ok","data":{"remainingCredits":6}}`, rr.Body.String())
}
