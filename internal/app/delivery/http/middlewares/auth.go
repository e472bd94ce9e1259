package middlewares

import (
	"context"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

func ExtractSessionToken(header http.Header) string {
	return strings.TrimSpace(header.Get(constvars.HeaderSessionToken))
}

// RequireAuth verifies the session token of a request. It has no side effects; the
// error is always a 401 CustomError.
func (m *Middlewares) RequireAuth(header http.Header) (*models.SessionPayload, error) {
	token := ExtractSessionToken(header)
	if token == "" {
		return nil, exceptions.ErrSessionTokenMissing(nil)
	}

	payload, ok := m.SessionTokenService.Verify(token)
	if !ok {
		return nil, exceptions.ErrSessionTokenInvalid(nil)
	}
	return payload, nil
}

// RequireAdmin is RequireAuth plus a 403 for any role other than admin.
func (m *Middlewares) RequireAdmin(header http.Header) (*models.SessionPayload, error) {
	payload, err := m.RequireAuth(header)
	if err != nil {
		return nil, err
	}
	if payload.Role != constvars.RoleAdmin {
		return nil, exceptions.ErrForbiddenRole(nil, payload.Role, constvars.RoleAdmin)
	}
	return payload, nil
}

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return m.guard(m.RequireAuth, next)
}

func (m *Middlewares) AuthenticateAdmin(next http.Handler) http.Handler {
	return m.guard(m.RequireAdmin, next)
}

func (m *Middlewares) guard(check func(http.Header) (*models.SessionPayload, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		payload, err := check(r.Header)
		if err != nil {
			m.Log.Warn("Middlewares.guard request rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_PAYLOAD_KEY, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionPayloadFromContext returns the payload stored by Authenticate or
// AuthenticateAdmin, or nil outside a guarded route.
func SessionPayloadFromContext(ctx context.Context) *models.SessionPayload {
	payload, _ := ctx.Value(constvars.CONTEXT_SESSION_PAYLOAD_KEY).(*models.SessionPayload)
	return payload
}
