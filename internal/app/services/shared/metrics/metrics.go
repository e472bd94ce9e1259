package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LoginResultSuccess  = "success"
	LoginResultFailure  = "failure"
	LoginResultDisabled = "disabled"

	MigrationResultSuccess = "success"
	MigrationResultFailure = "failure"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	LoginAttemptsTotal        *prometheus.CounterVec
	RateLimitedTotal          *prometheus.CounterVec
	CreditDecrementsTotal     prometheus.Counter
	QuotaRejectionsTotal      prometheus.Counter
	LegacyHashMigrationsTotal *prometheus.CounterVec
	AnalysisDuration          prometheus.Histogram
	HTTPRequestsTotal         *prometheus.CounterVec
}

// NewMetrics registers every collector on a private registry so that
// several instances can coexist in one process.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
		RateLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by a rate limiter",
			},
			[]string{"scope"},
		),
		CreditDecrementsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "credit_decrements_total",
				Help:      "Clinic credits consumed by saved consultations",
			},
		),
		QuotaRejectionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quota_rejections_total",
				Help:      "Consultation saves rejected because the clinic quota is exhausted",
			},
		),
		LegacyHashMigrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "legacy_hash_migrations_total",
				Help:      "Legacy password hashes upgraded to bcrypt",
			},
			[]string{"result"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Audio analysis duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "status"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordRateLimited(scope string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(scope).Inc()
}

func (m *Metrics) RecordCreditDecrement() {
	if m == nil {
		return
	}
	m.CreditDecrementsTotal.Inc()
}

func (m *Metrics) RecordQuotaRejection() {
	if m == nil {
		return
	}
	m.QuotaRejectionsTotal.Inc()
}

func (m *Metrics) RecordLegacyHashMigration(result string) {
	if m == nil {
		return
	}
	m.LegacyHashMigrationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAnalysis(duration time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordHTTPRequest(method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, status).Inc()
}
