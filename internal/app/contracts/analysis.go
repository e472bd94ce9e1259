package contracts

import (
	"context"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
)

// AnalysisProvider turns consultation audio into a transcript and structured fields.
type AnalysisProvider interface {
	Analyze(ctx context.Context, audio *models.AudioInput) (*models.AnalysisResult, error)
}

type AnalysisUsecase interface {
	AnalyzeAudio(ctx context.Context, session *models.SessionPayload, request *requests.AnalyzeAudio) (*responses.AnalyzeAudio, error)
}

type AudioArchive interface {
	Archive(ctx context.Context, login string, audio *models.AudioInput) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event *models.Event) error
}
