package controllers

import (
	"context"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/delivery/http/middlewares"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type CreditController struct {
	Log            *zap.Logger
	CreditUsecase  contracts.CreditUsecase
	InternalConfig *config.InternalConfig
}

func NewCreditController(logger *zap.Logger, creditUsecase contracts.CreditUsecase, internalConfig *config.InternalConfig) *CreditController {
	return &CreditController{
		Log:            logger,
		CreditUsecase:  creditUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *CreditController) GetCredits(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("CreditController.GetCredits called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := middlewares.SessionPayloadFromContext(r.Context())
	if session == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.CreditUsecase.GetCredits(ctx, session, r.URL.Query().Get("login"))
	if err != nil {
		ctrl.Log.Error("CreditController.GetCredits error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCreditsSuccessMessage, result)
}
