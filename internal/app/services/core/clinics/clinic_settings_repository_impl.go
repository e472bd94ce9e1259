package clinics

import (
	"context"
	"errors"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"math"
	"strconv"
	"strings"
)

// clinicSettingsRepository reads the key/value Settings sheet held in each clinic's
// own container.
type clinicSettingsRepository struct {
	RowStore contracts.RowStore
}

func NewClinicSettingsRepository(rowStore contracts.RowStore) contracts.ClinicSettingsRepository {
	return &clinicSettingsRepository{RowStore: rowStore}
}

func (r *clinicSettingsRepository) GetSettings(ctx context.Context, clinicID string) (*contracts.ClinicSettings, error) {
	rows, err := r.RowStore.ReadRange(ctx, clinicID, constvars.RangeSettings)
	if err != nil {
		return nil, err
	}
	return parseSettings(clinicID, rows), nil
}

func (r *clinicSettingsRepository) UpdateUsedCredits(ctx context.Context, clinicID string, rowIndex, usedCredits int) error {
	reference := fmt.Sprintf("%s!B%d", constvars.SheetSettings, rowIndex)
	return r.RowStore.UpdateCell(ctx, clinicID, reference, strconv.Itoa(usedCredits))
}

// parseSettings keys rows by their trimmed, lowercased first cell; a later row wins
// over an earlier one. Rows without a value cell are ignored for values but still
// locate the used_credits row.
func parseSettings(clinicID string, rows [][]string) *contracts.ClinicSettings {
	values := make(map[string]string)
	usedCreditsRow := 0

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		if key == "" {
			continue
		}
		if key == constvars.SettingsKeyUsedCredits {
			usedCreditsRow = i + 1
		}
		if len(row) > 1 {
			values[key] = row[1]
		}
	}

	clinicName := values[constvars.SettingsKeyClinicName]
	if clinicName == "" {
		clinicName = constvars.DefaultClinicName
	}

	return &contracts.ClinicSettings{
		Credits: models.ClinicCredits{
			ClinicID:     clinicID,
			ClinicName:   clinicName,
			TotalCredits: parseLeadingInt(values[constvars.SettingsKeyTotalCredits]),
			UsedCredits:  parseLeadingInt(values[constvars.SettingsKeyUsedCredits]),
		},
		UsedCreditsRow: usedCreditsRow,
	}
}

// parseLeadingInt reads an optional sign and the digits that follow it, so "12 шт"
// is 12. Anything without leading digits is 0.
func parseLeadingInt(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '-' || value[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(value[:end])
	if errors.Is(err, strconv.ErrRange) {
		if value[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
