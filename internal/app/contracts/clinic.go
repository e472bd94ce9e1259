package contracts

import (
	"context"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/dto/responses"
)

// ClinicSettings is the parsed Settings sheet of one clinic. UsedCreditsRow is the
// 1-based row of the used_credits key, or 0 when the key is missing.
type ClinicSettings struct {
	Credits        models.ClinicCredits
	UsedCreditsRow int
}

type ClinicSettingsRepository interface {
	GetSettings(ctx context.Context, clinicID string) (*ClinicSettings, error)
	UpdateUsedCredits(ctx context.Context, clinicID string, rowIndex, usedCredits int) error
}

// CreditLedger gates consultation saves on a clinic's credit allowance. HasCredits and
// Decrement are separate calls and are not atomic against the row store.
type CreditLedger interface {
	// ResolveClinicFor returns "" for accounts without a clinic; those are unlimited.
	ResolveClinicFor(ctx context.Context, login string) (string, error)
	GetCredits(ctx context.Context, clinicID string) (*models.ClinicCredits, error)
	HasCredits(ctx context.Context, clinicID string) (bool, error)
	// Decrement adds one to used_credits and returns the credits left afterwards.
	Decrement(ctx context.Context, clinicID string) (int, error)
}

type CreditUsecase interface {
	GetCredits(ctx context.Context, session *models.SessionPayload, login string) (*responses.Credits, error)
}
