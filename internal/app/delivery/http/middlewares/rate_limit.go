package middlewares

import (
	"fmt"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// GlobalRateLimit throttles every route per client IP.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}

// LoginRateLimit counts every login attempt per client IP, successful or not. A
// limited request gets 429 with Retry-After in seconds.
func (m *Middlewares) LoginRateLimit(next http.Handler) http.Handler {
	maxAttempts := m.InternalConfig.RateLimit.LoginMaxAttempts
	window := time.Duration(m.InternalConfig.RateLimit.LoginWindowInMinutes) * time.Minute

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		clientIP, err := httprate.KeyByIP(r)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		key := fmt.Sprintf(constvars.LoginRateLimitKeyFormat, clientIP)

		decision, err := m.LoginRateLimiter.CheckAndConsume(r.Context(), key, maxAttempts, window)
		if err != nil {
			m.Log.Error("Middlewares.LoginRateLimit error calling RateLimiter.CheckAndConsume",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if !decision.Allowed {
			retryAfter := time.Until(decision.ResetAt)
			if retryAfter < time.Second {
				retryAfter = time.Second
			}
			retryAfterMinutes := int(math.Ceil(retryAfter.Minutes()))

			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRateLimited(nil, key, retryAfterMinutes))
			return
		}

		next.ServeHTTP(w, r)
	})
}
