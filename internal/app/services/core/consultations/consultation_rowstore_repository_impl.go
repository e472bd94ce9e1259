package consultations

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"strings"
)

// consultationRowStoreRepository keeps one consultation per row of the consultations
// sheet in the main container.
type consultationRowStoreRepository struct {
	RowStore      contracts.RowStore
	MainContainer string
	Sheet         string
}

func NewConsultationRowStoreRepository(rowStore contracts.RowStore, mainContainer, sheet string) contracts.ConsultationRepository {
	return &consultationRowStoreRepository{
		RowStore:      rowStore,
		MainContainer: mainContainer,
		Sheet:         sheet,
	}
}

func (r *consultationRowStoreRepository) Append(ctx context.Context, consultation *models.Consultation) error {
	return r.RowStore.AppendRow(ctx, r.MainContainer, r.Sheet, consultation.ToRow())
}

// List skips the header and any row without a patient name, keeping sheet order.
func (r *consultationRowStoreRepository) List(ctx context.Context) ([]models.ConsultationRecord, error) {
	rangeRef := fmt.Sprintf("%s!%s", r.Sheet, constvars.ConsultationsColumns)
	rows, err := r.RowStore.ReadRange(ctx, r.MainContainer, rangeRef)
	if err != nil {
		return nil, err
	}

	records := make([]models.ConsultationRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		firstCell := strings.TrimSpace(row[0])
		if firstCell == "" || firstCell == constvars.ConsultationsHeaderFirstCell {
			continue
		}
		records = append(records, *models.ConsultationRecordFromRow(row, i+1))
	}
	return records, nil
}

func (r *consultationRowStoreRepository) Delete(ctx context.Context, rowIndex int) error {
	return r.RowStore.DeleteRow(ctx, r.MainContainer, r.Sheet, rowIndex)
}

func (r *consultationRowStoreRepository) EnsureSheet(ctx context.Context) error {
	return r.RowStore.EnsureSheet(ctx, r.MainContainer, r.Sheet, constvars.ConsultationsSheetHeader)
}
