package contracts

import (
	"context"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
)

type ConsultationRepository interface {
	Append(ctx context.Context, consultation *models.Consultation) error
	List(ctx context.Context) ([]models.ConsultationRecord, error)
	Delete(ctx context.Context, rowIndex int) error
	EnsureSheet(ctx context.Context) error
}

type ConsultationUsecase interface {
	SaveConsultation(ctx context.Context, session *models.SessionPayload, request *requests.SaveConsultation) (*responses.SaveConsultation, error)
	ListPatients(ctx context.Context) ([]responses.Patient, error)
	DeleteConsultation(ctx context.Context, rowIndex int) error
}
