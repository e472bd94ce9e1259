package analysis

import (
	"context"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
	"time"

	"go.uber.org/zap"
)

type analysisUsecase struct {
	AnalysisProvider contracts.AnalysisProvider
	AudioArchive     contracts.AudioArchive
	Metrics          *metrics.Metrics
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

// NewAnalysisUsecase accepts a nil audioArchive when archiving is disabled.
func NewAnalysisUsecase(
	analysisProvider contracts.AnalysisProvider,
	audioArchive contracts.AudioArchive,
	m *metrics.Metrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AnalysisUsecase {
	return &analysisUsecase{
		AnalysisProvider: analysisProvider,
		AudioArchive:     audioArchive,
		Metrics:          m,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

func (uc *analysisUsecase) AnalyzeAudio(ctx context.Context, session *models.SessionPayload, request *requests.AnalyzeAudio) (*responses.AnalyzeAudio, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("analysisUsecase.AnalyzeAudio called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, session.Login),
		zap.Int64(constvars.LoggingFileSizeKey, request.Size),
	)

	audio := &models.AudioInput{
		FileName:    request.FileName,
		ContentType: request.ContentType,
		Content:     request.Content,
	}

	if uc.AudioArchive != nil {
		objectName, err := uc.AudioArchive.Archive(ctx, session.Login, audio)
		if err != nil {
			uc.Log.Warn("analysisUsecase.AnalyzeAudio error calling AudioArchive.Archive",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		} else {
			uc.Log.Info("analysisUsecase.AnalyzeAudio audio archived",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
			)
		}
	}

	timeout := time.Duration(uc.InternalConfig.Analysis.TimeoutInSeconds) * time.Second
	analysisCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startedAt := time.Now()
	result, err := uc.AnalysisProvider.Analyze(analysisCtx, audio)
	uc.Metrics.ObserveAnalysis(time.Since(startedAt))
	if err != nil {
		uc.Log.Error("analysisUsecase.AnalyzeAudio error calling AnalysisProvider.Analyze",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("analysisUsecase.AnalyzeAudio succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTranscriptLenKey, len(result.Transcript)),
	)
	return &responses.AnalyzeAudio{
		Text:     result.Transcript,
		Analysis: result.Fields,
	}, nil
}
