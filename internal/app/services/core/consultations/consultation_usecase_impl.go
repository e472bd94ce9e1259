package consultations

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/dto/responses"
	"jazaidoc-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type consultationUsecase struct {
	ConsultationRepository contracts.ConsultationRepository
	CreditLedger           contracts.CreditLedger
	LockerService          contracts.LockerService
	EventPublisher         contracts.EventPublisher
	Metrics                *metrics.Metrics
	InternalConfig         *config.InternalConfig
	Location               *time.Location
	Log                    *zap.Logger
	now                    func() time.Time
}

// NewConsultationUsecase builds the save workflow. lockerService is only used when
// credits are enforced strictly and may be nil otherwise.
func NewConsultationUsecase(
	consultationRepository contracts.ConsultationRepository,
	creditLedger contracts.CreditLedger,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	m *metrics.Metrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsultationUsecase {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logger.Warn("consultationUsecase falling back to UTC",
			zap.String(constvars.LoggingTimezoneKey, internalConfig.App.Timezone),
			zap.Error(err),
		)
		location = time.UTC
	}

	return &consultationUsecase{
		ConsultationRepository: consultationRepository,
		CreditLedger:           creditLedger,
		LockerService:          lockerService,
		EventPublisher:         eventPublisher,
		Metrics:                m,
		InternalConfig:         internalConfig,
		Location:               location,
		Log:                    logger,
		now:                    time.Now,
	}
}

func (uc *consultationUsecase) SaveConsultation(ctx context.Context, session *models.SessionPayload, request *requests.SaveConsultation) (*responses.SaveConsultation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.SaveConsultation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLoginKey, session.Login),
	)

	clinicID, err := uc.CreditLedger.ResolveClinicFor(ctx, session.Login)
	if err != nil {
		uc.Log.Error("consultationUsecase.SaveConsultation error calling CreditLedger.ResolveClinicFor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	consultation := uc.buildConsultation(session, request)

	if clinicID == "" {
		err = uc.appendConsultation(ctx, consultation)
		if err != nil {
			return nil, err
		}
		uc.publishSaved(ctx, consultation, session, &models.SaveOutcome{Remaining: constvars.UnlimitedCredits, Unlimited: true})

		uc.Log.Info("consultationUsecase.SaveConsultation succeeded without clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLoginKey, session.Login),
		)
		return &responses.SaveConsultation{
			RemainingCredits: constvars.UnlimitedCredits,
			Unlimited:        true,
		}, nil
	}

	if uc.InternalConfig.Credits.Enforcement == constvars.CreditsEnforcementStrict {
		unlock, err := uc.lockClinicCredits(ctx, clinicID)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	outcome, err := uc.saveWithCredits(ctx, clinicID, consultation)
	if err != nil {
		return nil, err
	}
	uc.publishSaved(ctx, consultation, session, outcome)
	if outcome.Remaining <= 0 {
		uc.publish(ctx, &models.Event{
			Type:       constvars.EventClinicCreditsExhausted,
			OccurredAt: consultation.SavedAt,
			Payload: map[string]interface{}{
				"clinicId":         clinicID,
				"remainingCredits": outcome.Remaining,
			},
		})
	}

	uc.Log.Info("consultationUsecase.SaveConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.Int(constvars.LoggingRemainingKey, outcome.Remaining),
	)
	return &responses.SaveConsultation{
		RemainingCredits: outcome.Remaining,
		Unlimited:        false,
	}, nil
}

// saveWithCredits refuses the write when the clinic has nothing left and decrements
// only after the row was appended.
func (uc *consultationUsecase) saveWithCredits(ctx context.Context, clinicID string, consultation *models.Consultation) (*models.SaveOutcome, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	hasCredits, err := uc.CreditLedger.HasCredits(ctx, clinicID)
	if err != nil {
		uc.Log.Error("consultationUsecase.saveWithCredits error calling CreditLedger.HasCredits",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}
	if !hasCredits {
		uc.Metrics.RecordQuotaRejection()
		uc.Log.Warn("consultationUsecase.saveWithCredits clinic has no credits left",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
		)
		return nil, exceptions.ErrQuotaExhausted(nil, clinicID)
	}

	err = uc.appendConsultation(ctx, consultation)
	if err != nil {
		return nil, err
	}

	remaining, err := uc.CreditLedger.Decrement(ctx, clinicID)
	if err != nil {
		uc.Log.Error("consultationUsecase.saveWithCredits error calling CreditLedger.Decrement",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}

	return &models.SaveOutcome{
		ClinicID:  clinicID,
		Remaining: remaining,
	}, nil
}

func (uc *consultationUsecase) lockClinicCredits(ctx context.Context, clinicID string) (func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	lockKey := fmt.Sprintf(constvars.CreditLockKeyFormat, clinicID)
	lockTTL := time.Duration(uc.InternalConfig.Credits.LockTTLInSeconds) * time.Second

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Error("consultationUsecase.lockClinicCredits error calling LockerService.TryLock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		uc.Log.Warn("consultationUsecase.lockClinicCredits lock held by another save",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
		)
		return nil, exceptions.ErrCreditsBusy(nil, clinicID)
	}

	return func() {
		err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)
		if err != nil {
			uc.Log.Error("consultationUsecase.lockClinicCredits error calling LockerService.Unlock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *consultationUsecase) appendConsultation(ctx context.Context, consultation *models.Consultation) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.ConsultationRepository.Append(ctx, consultation)
	if err != nil {
		uc.Log.Error("consultationUsecase.appendConsultation error calling ConsultationRepository.Append",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *consultationUsecase) buildConsultation(session *models.SessionPayload, request *requests.SaveConsultation) *models.Consultation {
	doctorName := session.Name
	if doctorName == "" {
		doctorName = session.Login
	}

	return &models.Consultation{
		PatientName:     request.PatientName,
		Dob:             request.Dob,
		VisitDate:       request.VisitDate,
		Complaints:      request.Complaints,
		Anamnesis:       request.Anamnesis,
		Diagnosis:       request.Diagnosis,
		Treatment:       request.Treatment,
		Recommendations: request.Recommendations,
		DoctorName:      doctorName,
		DoctorSpecialty: request.DoctorSpecialty,
		SavedAt:         uc.now().In(uc.Location),
	}
}

func (uc *consultationUsecase) publishSaved(ctx context.Context, consultation *models.Consultation, session *models.SessionPayload, outcome *models.SaveOutcome) {
	uc.publish(ctx, &models.Event{
		Type:       constvars.EventConsultationSaved,
		OccurredAt: consultation.SavedAt,
		Payload: map[string]interface{}{
			"login":            session.Login,
			"clinicId":         outcome.ClinicID,
			"patientName":      consultation.PatientName,
			"visitDate":        consultation.VisitDate,
			"remainingCredits": outcome.Remaining,
			"unlimited":        outcome.Unlimited,
		},
	})
}

// publish is best-effort: the consultation is already stored when it runs.
func (uc *consultationUsecase) publish(ctx context.Context, event *models.Event) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.EventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Log.Warn("consultationUsecase.publish error calling EventPublisher.Publish",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}
}

// ListPatients returns saved consultations most recent first. ID is the position in
// sheet order, RowIndex the sheet row to pass to DeleteConsultation.
func (uc *consultationUsecase) ListPatients(ctx context.Context) ([]responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	records, err := uc.ConsultationRepository.List(ctx)
	if err != nil {
		uc.Log.Error("consultationUsecase.ListPatients error calling ConsultationRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patients := make([]responses.Patient, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		patients = append(patients, responses.Patient{
			ID:              i,
			PatientName:     record.PatientName,
			Dob:             record.Dob,
			VisitDate:       record.VisitDate,
			Complaints:      record.Complaints,
			Anamnesis:       record.Anamnesis,
			Diagnosis:       record.Diagnosis,
			Treatment:       record.Treatment,
			Recommendations: record.Recommendations,
			DoctorName:      record.DoctorName,
			DoctorSpecialty: record.DoctorSpecialty,
			SavedAt:         record.SavedAt,
			RowIndex:        record.RowIndex,
		})
	}

	uc.Log.Info("consultationUsecase.ListPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(patients)),
	)
	return patients, nil
}

// DeleteConsultation only removes rows that List would return, so the header and
// blank rows cannot be deleted through it.
func (uc *consultationUsecase) DeleteConsultation(ctx context.Context, rowIndex int) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.DeleteConsultation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRowIndexKey, rowIndex),
	)

	records, err := uc.ConsultationRepository.List(ctx)
	if err != nil {
		uc.Log.Error("consultationUsecase.DeleteConsultation error calling ConsultationRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	found := false
	for _, record := range records {
		if record.RowIndex == rowIndex {
			found = true
			break
		}
	}
	if !found {
		return exceptions.ErrRecordNotFound(nil, rowIndex)
	}

	err = uc.ConsultationRepository.Delete(ctx, rowIndex)
	if err != nil {
		uc.Log.Error("consultationUsecase.DeleteConsultation error calling ConsultationRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingRowIndexKey, rowIndex),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("consultationUsecase.DeleteConsultation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRowIndexKey, rowIndex),
	)
	return nil
}
