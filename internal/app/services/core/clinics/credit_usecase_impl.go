package clinics

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/responses"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type creditUsecase struct {
	CreditLedger contracts.CreditLedger
	Log          *zap.Logger
}

func NewCreditUsecase(creditLedger contracts.CreditLedger, logger *zap.Logger) contracts.CreditUsecase {
	return &creditUsecase{
		CreditLedger: creditLedger,
		Log:          logger,
	}
}

// GetCredits reports the credits of the caller's clinic. Admins may name another
// login; anyone else asking for a different login is refused.
func (uc *creditUsecase) GetCredits(ctx context.Context, session *models.SessionPayload, login string) (*responses.Credits, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("creditUsecase.GetCredits called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, session.Login),
	)

	target := session.Login
	if requested := utils.NormalizeLogin(login); requested != "" && requested != utils.NormalizeLogin(session.Login) {
		if session.Role != constvars.RoleAdmin {
			return nil, exceptions.ErrForbiddenRole(nil, session.Role, constvars.RoleAdmin)
		}
		target = requested
	}

	clinicID, err := uc.CreditLedger.ResolveClinicFor(ctx, target)
	if err != nil {
		return nil, err
	}
	if clinicID == "" {
		uc.Log.Info("creditUsecase.GetCredits account has no clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, target),
		)
		return &responses.Credits{
			ClinicName:       constvars.NoClinicDisplayName,
			TotalCredits:     constvars.UnlimitedCredits,
			UsedCredits:      0,
			RemainingCredits: constvars.UnlimitedCredits,
			Unlimited:        true,
		}, nil
	}

	credits, err := uc.CreditLedger.GetCredits(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("creditUsecase.GetCredits succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.Int(constvars.LoggingRemainingKey, credits.RemainingCredits()),
	)
	return &responses.Credits{
		ClinicName:       credits.ClinicName,
		TotalCredits:     credits.TotalCredits,
		UsedCredits:      credits.UsedCredits,
		RemainingCredits: credits.RemainingCredits(),
		Unlimited:        false,
	}, nil
}
