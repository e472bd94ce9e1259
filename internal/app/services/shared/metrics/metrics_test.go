package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordLogin(LoginResultSuccess)
		m.RecordRateLimited("login")
		m.RecordCreditDecrement()
		m.RecordQuotaRejection()
		m.RecordLegacyHashMigration(MigrationResultSuccess)
		m.ObserveAnalysis(0)
		m.RecordHTTPRequest(http.MethodGet, "200")
	})
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	first := NewMetrics("jazaidoc")
	second := NewMetrics("jazaidoc")

	first.RecordCreditDecrement()
	first.RecordCreditDecrement()
	second.RecordCreditDecrement()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.CreditDecrementsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.CreditDecrementsTotal))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("jazaidoc")
	m.RecordLogin(LoginResultFailure)
	m.RecordRateLimited("login")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `jazaidoc_login_attempts_total{result="failure"} 1`))
	assert.True(t, strings.Contains(body, `jazaidoc_rate_limited_total{scope="login"} 1`))
}
