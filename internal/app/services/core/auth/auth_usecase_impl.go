package auth

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const passwordMigrationTimeout = 15 * time.Second

type authUsecase struct {
	UserRepository      contracts.UserRepository
	SessionTokenService contracts.SessionTokenService
	Metrics             *metrics.Metrics
	Log                 *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionTokenService contracts.SessionTokenService,
	m *metrics.Metrics,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:      userRepository,
		SessionTokenService: sessionTokenService,
		Metrics:             m,
		Log:                 logger,
	}
}

// Login checks the password before the active flag, so a disabled account is only
// reported to someone who already knows its password.
func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, request.Username),
	)

	user, err := uc.UserRepository.FindByLogin(ctx, request.Username)
	if err != nil {
		uc.Log.Error("authUsecase.Login error calling UserRepository.FindByLogin",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		uc.Metrics.RecordLogin(metrics.LoginResultFailure)
		uc.Log.Warn("authUsecase.Login unknown login",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, request.Username),
		)
		return nil, exceptions.ErrInvalidCredentials(nil, request.Username)
	}

	if !utils.VerifyPassword(request.Password, user.PasswordHash) {
		uc.Metrics.RecordLogin(metrics.LoginResultFailure)
		uc.Log.Warn("authUsecase.Login password mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, user.Login),
		)
		return nil, exceptions.ErrInvalidCredentials(nil, request.Username)
	}

	if !user.Active {
		uc.Metrics.RecordLogin(metrics.LoginResultDisabled)
		uc.Log.Warn("authUsecase.Login account disabled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, user.Login),
		)
		return nil, exceptions.ErrAccountDisabled(nil, user.Login)
	}

	if utils.IsLegacyPasswordHash(user.PasswordHash) {
		account := *user
		migrationCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), passwordMigrationTimeout)
		go func() {
			defer cancel()
			uc.migrateLegacyPassword(migrationCtx, &account, request.Password)
		}()
	}

	if user.Role == "" {
		user.Role = constvars.RoleDoctor
	}
	token, err := uc.SessionTokenService.Sign(user.SessionPayload())
	if err != nil {
		uc.Log.Error("authUsecase.Login error calling SessionTokenService.Sign",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSignSessionToken(err)
	}

	uc.Metrics.RecordLogin(metrics.LoginResultSuccess)
	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, user.Login),
		zap.String(constvars.LoggingRoleKey, user.Role),
	)
	return &responses.Login{
		Token: token,
		User: responses.UserProfile{
			Login:     user.Login,
			Name:      user.Name,
			Specialty: user.Specialty,
			Role:      user.Role,
		},
	}, nil
}

// migrateLegacyPassword stores a bcrypt hash for an account that just logged in with a
// legacy digest. Failures are logged and never reach the login response.
func (uc *authUsecase) migrateLegacyPassword(ctx context.Context, user *models.UserAccount, password string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		uc.Metrics.RecordLegacyHashMigration(metrics.MigrationResultFailure)
		uc.Log.Error("authUsecase.migrateLegacyPassword error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, user.Login),
			zap.Error(err),
		)
		return
	}

	err = uc.UserRepository.UpdatePasswordHash(ctx, user, passwordHash)
	if err != nil {
		uc.Metrics.RecordLegacyHashMigration(metrics.MigrationResultFailure)
		uc.Log.Error("authUsecase.migrateLegacyPassword error calling UserRepository.UpdatePasswordHash",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, user.Login),
			zap.Error(err),
		)
		return
	}

	uc.Metrics.RecordLegacyHashMigration(metrics.MigrationResultSuccess)
	uc.Log.Info("authUsecase.migrateLegacyPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, user.Login),
		zap.Int(constvars.LoggingRowIndexKey, user.RowIndex),
	)
}
