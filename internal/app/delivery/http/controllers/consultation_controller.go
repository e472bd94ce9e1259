package controllers

import (
	"context"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/delivery/http/middlewares"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase contracts.ConsultationUsecase
	InternalConfig      *config.InternalConfig
}

func NewConsultationController(logger *zap.Logger, consultationUsecase contracts.ConsultationUsecase, internalConfig *config.InternalConfig) *ConsultationController {
	return &ConsultationController{
		Log:                 logger,
		ConsultationUsecase: consultationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *ConsultationController) SaveConsultation(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("ConsultationController.SaveConsultation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := middlewares.SessionPayloadFromContext(r.Context())
	if session == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionTokenMissing(nil))
		return
	}

	request := new(requests.SaveConsultation)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		ctrl.Log.Error("ConsultationController.SaveConsultation error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeSaveConsultationRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("ConsultationController.SaveConsultation validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ConsultationUsecase.SaveConsultation(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("ConsultationController.SaveConsultation error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	ctrl.Log.Info("ConsultationController.SaveConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRemainingKey, result.RemainingCredits),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveConsultationSuccessMessage, result)
}

func (ctrl *ConsultationController) ListPatients(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("ConsultationController.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ConsultationUsecase.ListPatients(ctx)
	if err != nil {
		ctrl.Log.Error("ConsultationController.ListPatients error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, result)
}

func (ctrl *ConsultationController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("ConsultationController.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rowIndex, err := strconv.Atoi(chi.URLParam(r, "rowIndex"))
	if err != nil || rowIndex < 1 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, "rowIndex"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	err = ctrl.ConsultationUsecase.DeleteConsultation(ctx, rowIndex)
	if err != nil {
		ctrl.Log.Error("ConsultationController.DeletePatient error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingRowIndexKey, rowIndex),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeletePatientSuccessMessage, nil)
}
