package session

import (
	"errors"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	models.SessionPayload
	jwt.RegisteredClaims
}

// sessionTokenService issues HS256 compact tokens. Signature checks use
// hmac.Equal inside the jwt library.
type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewSessionTokenService(internalConfig *config.InternalConfig) contracts.SessionTokenService {
	return newSessionTokenService(internalConfig.Session.Secret, time.Duration(internalConfig.Session.TTLInHours)*time.Hour, time.Now)
}

func newSessionTokenService(secret string, ttl time.Duration, now func() time.Time) *sessionTokenService {
	return &sessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(now),
		),
	}
}

func (s *sessionTokenService) Sign(payload models.SessionPayload) (string, error) {
	issuedAt := s.now()
	claims := sessionClaims{
		SessionPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  payload.Login,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *sessionTokenService) Verify(token string) (*models.SessionPayload, bool) {
	if token == "" {
		return nil, false
	}

	claims := &sessionClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}

	if claims.Login == "" || claims.Subject != claims.Login {
		return nil, false
	}

	payload := claims.SessionPayload
	return &payload, true
}

var errEmptySecret = errors.New("session secret must not be empty")

// ValidateSecret rejects configurations that would sign tokens with a blank key.
func ValidateSecret(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errEmptySecret
	}
	return nil
}
