package contracts

import "jazaidoc-service/internal/app/models"

type SessionTokenService interface {
	Sign(payload models.SessionPayload) (string, error)
	// Verify reports false for any token that does not decode or does not carry a
	// valid signature. It never returns an error.
	Verify(token string) (*models.SessionPayload, bool)
}
