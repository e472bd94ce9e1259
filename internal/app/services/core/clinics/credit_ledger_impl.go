package clinics

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// creditLedger never treats a store failure as unlimited credits: every read
// or write error is returned to the caller.
type creditLedger struct {
	UserRepository           contracts.UserRepository
	ClinicSettingsRepository contracts.ClinicSettingsRepository
	Metrics                  *metrics.Metrics
	Log                      *zap.Logger
}

func NewCreditLedger(
	userRepository contracts.UserRepository,
	clinicSettingsRepository contracts.ClinicSettingsRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) contracts.CreditLedger {
	return &creditLedger{
		UserRepository:           userRepository,
		ClinicSettingsRepository: clinicSettingsRepository,
		Metrics:                  m,
		Log:                      logger,
	}
}

func (l *creditLedger) ResolveClinicFor(ctx context.Context, login string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	clinicID, err := l.UserRepository.GetClinicID(ctx, login)
	if err != nil {
		l.Log.Error("creditLedger.ResolveClinicFor error calling UserRepository.GetClinicID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, login),
			zap.Error(err),
		)
		return "", err
	}
	return clinicID, nil
}

func (l *creditLedger) GetCredits(ctx context.Context, clinicID string) (*models.ClinicCredits, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	settings, err := l.ClinicSettingsRepository.GetSettings(ctx, clinicID)
	if err != nil {
		l.Log.Error("creditLedger.GetCredits error calling ClinicSettingsRepository.GetSettings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}

	credits := settings.Credits
	return &credits, nil
}

func (l *creditLedger) HasCredits(ctx context.Context, clinicID string) (bool, error) {
	credits, err := l.GetCredits(ctx, clinicID)
	if err != nil {
		return false, err
	}
	return credits.HasCredits(), nil
}

func (l *creditLedger) Decrement(ctx context.Context, clinicID string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	l.Log.Info("creditLedger.Decrement called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	settings, err := l.ClinicSettingsRepository.GetSettings(ctx, clinicID)
	if err != nil {
		l.Log.Error("creditLedger.Decrement error calling ClinicSettingsRepository.GetSettings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return 0, err
	}
	if settings.UsedCreditsRow == 0 {
		l.Log.Error("creditLedger.Decrement settings sheet has no used_credits row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
		)
		return 0, exceptions.ErrSettingsMissingUsedCredits(nil)
	}

	usedCredits := settings.Credits.UsedCredits + 1
	err = l.ClinicSettingsRepository.UpdateUsedCredits(ctx, clinicID, settings.UsedCreditsRow, usedCredits)
	if err != nil {
		l.Log.Error("creditLedger.Decrement error calling ClinicSettingsRepository.UpdateUsedCredits",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return 0, err
	}
	l.Metrics.RecordCreditDecrement()

	remaining := settings.Credits.TotalCredits - usedCredits
	l.Log.Info("creditLedger.Decrement succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.Int(constvars.LoggingUsedCreditsKey, usedCredits),
		zap.Int(constvars.LoggingRemainingKey, remaining),
	)
	return remaining, nil
}
