package middlewares

import (
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/services/shared/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log                 *zap.Logger
	SessionTokenService contracts.SessionTokenService
	LoginRateLimiter    contracts.RateLimiter
	Metrics             *metrics.Metrics
	InternalConfig      *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	sessionTokenService contracts.SessionTokenService,
	loginRateLimiter contracts.RateLimiter,
	m *metrics.Metrics,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:                 logger,
		SessionTokenService: sessionTokenService,
		LoginRateLimiter:    loginRateLimiter,
		Metrics:             m,
		InternalConfig:      internalConfig,
	}
}
