package controllers

import (
	"errors"
	"io"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/delivery/http/middlewares"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

const multipartMemoryLimit = 8 << 20

type AnalysisController struct {
	Log             *zap.Logger
	AnalysisUsecase contracts.AnalysisUsecase
	InternalConfig  *config.InternalConfig
}

func NewAnalysisController(logger *zap.Logger, analysisUsecase contracts.AnalysisUsecase, internalConfig *config.InternalConfig) *AnalysisController {
	return &AnalysisController{
		Log:             logger,
		AnalysisUsecase: analysisUsecase,
		InternalConfig:  internalConfig,
	}
}

// AnalyzeAudio is bounded by the analysis timeout inside the usecase rather than
// the general request timeout.
func (ctrl *AnalysisController) AnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AnalysisController.AnalyzeAudio called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session := middlewares.SessionPayloadFromContext(r.Context())
	if session == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionTokenMissing(nil))
		return
	}

	err := r.ParseMultipartForm(multipartMemoryLimit)
	if err != nil {
		ctrl.Log.Error("AnalysisController.AnalyzeAudio error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, header, err := r.FormFile(constvars.AudioFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAudioRequired(nil))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	if len(content) == 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAudioRequired(nil))
		return
	}

	request := &requests.AnalyzeAudio{
		FileName:    header.Filename,
		ContentType: header.Header.Get(constvars.HeaderContentType),
		Size:        header.Size,
		Content:     content,
	}

	result, err := ctrl.AnalysisUsecase.AnalyzeAudio(r.Context(), session, request)
	if err != nil {
		ctrl.Log.Error("AnalysisController.AnalyzeAudio error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AnalysisController.AnalyzeAudio succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AnalyzeAudioSuccessMessage, result)
}
