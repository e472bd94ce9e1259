package users

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	Log            *zap.Logger
}

func NewUserUsecase(userRepository contracts.UserRepository, logger *zap.Logger) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		Log:            logger,
	}
}

func (uc *userUsecase) ListUsers(ctx context.Context) ([]responses.UserAccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.ListUsers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	accounts, err := uc.UserRepository.List(ctx)
	if err != nil {
		uc.Log.Error("userUsecase.ListUsers error calling UserRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.UserAccount, 0, len(accounts))
	for i := range accounts {
		response = append(response, toUserAccountResponse(&accounts[i]))
	}

	uc.Log.Info("userUsecase.ListUsers succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	return response, nil
}

func (uc *userUsecase) CreateUser(ctx context.Context, request *requests.CreateUser) (*responses.UserAccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, request.Login),
	)

	existing, err := uc.UserRepository.FindByLogin(ctx, request.Login)
	if err != nil {
		uc.Log.Error("userUsecase.CreateUser error calling UserRepository.FindByLogin",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		uc.Log.Warn("userUsecase.CreateUser login already exists",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, request.Login),
		)
		return nil, exceptions.ErrLoginAlreadyExists(nil, request.Login)
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	account := &models.UserAccount{
		Login:        utils.NormalizeLogin(request.Login),
		PasswordHash: passwordHash,
		Name:         request.Name,
		Specialty:    request.Specialty,
		Role:         request.Role,
		Active:       true,
		ClinicID:     request.ClinicID,
	}
	if account.Role == "" {
		account.Role = constvars.RoleDoctor
	}

	err = uc.UserRepository.Create(ctx, account)
	if err != nil {
		uc.Log.Error("userUsecase.CreateUser error calling UserRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("userUsecase.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, account.Login),
		zap.String(constvars.LoggingRoleKey, account.Role),
	)
	response := toUserAccountResponse(account)
	return &response, nil
}

func (uc *userUsecase) DeactivateUser(ctx context.Context, login string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.DeactivateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, login),
	)

	account, err := uc.UserRepository.FindByLogin(ctx, login)
	if err != nil {
		uc.Log.Error("userUsecase.DeactivateUser error calling UserRepository.FindByLogin",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if account == nil {
		return exceptions.ErrUserNotFound(nil, login)
	}

	err = uc.UserRepository.Deactivate(ctx, account)
	if err != nil {
		uc.Log.Error("userUsecase.DeactivateUser error calling UserRepository.Deactivate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("userUsecase.DeactivateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, account.Login),
		zap.Int(constvars.LoggingRowIndexKey, account.RowIndex),
	)
	return nil
}

func toUserAccountResponse(account *models.UserAccount) responses.UserAccount {
	role := account.Role
	if role == "" {
		role = constvars.RoleDoctor
	}
	return responses.UserAccount{
		Login:     account.Login,
		Name:      account.Name,
		Specialty: account.Specialty,
		Role:      role,
		Active:    account.Active,
		ClinicID:  account.ClinicID,
		RowIndex:  account.RowIndex,
	}
}
