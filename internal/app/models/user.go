package models

import (
	"jazaidoc-service/internal/pkg/constvars"
	"strconv"
	"strings"
)

// UserAccount is one row of the Users sheet:
// [login, passwordHash, name, specialty, role, active, clinicId].
type UserAccount struct {
	Login        string
	PasswordHash string
	Name         string
	Specialty    string
	Role         string
	Active       bool
	ClinicID     string
	// RowIndex is the 1-based sheet row, header included.
	RowIndex int
}

func (u *UserAccount) IsAdmin() bool {
	return u.Role == constvars.RoleAdmin
}

func (u *UserAccount) HasClinic() bool {
	return u.ClinicID != ""
}

func (u *UserAccount) SessionPayload() SessionPayload {
	return SessionPayload{
		Login: u.Login,
		Role:  u.Role,
		Name:  u.Name,
	}
}

func (u *UserAccount) ToRow() []string {
	return []string{
		u.Login,
		u.PasswordHash,
		u.Name,
		u.Specialty,
		u.Role,
		strconv.FormatBool(u.Active),
		u.ClinicID,
	}
}

// UserAccountFromRow maps a sheet row. Missing trailing cells read as empty, and only
// an explicit "false" marks the account inactive.
func UserAccountFromRow(row []string, rowIndex int) *UserAccount {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	return &UserAccount{
		Login:        cell(0),
		PasswordHash: cell(1),
		Name:         cell(2),
		Specialty:    cell(3),
		Role:         cell(4),
		Active:       !strings.EqualFold(strings.TrimSpace(cell(5)), "false"),
		ClinicID:     cell(6),
		RowIndex:     rowIndex,
	}
}
