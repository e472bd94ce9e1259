package users

import (
	"context"
	"fmt"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/utils"
	"strconv"
)

const (
	passwordHashColumn = "B"
	activeColumn       = "F"
)

// userRowStoreRepository reads the Users sheet of the main container. Row 1 is
// the header and is never returned.
type userRowStoreRepository struct {
	RowStore      contracts.RowStore
	MainContainer string
}

func NewUserRowStoreRepository(rowStore contracts.RowStore, mainContainer string) contracts.UserRepository {
	return &userRowStoreRepository{
		RowStore:      rowStore,
		MainContainer: mainContainer,
	}
}

func (r *userRowStoreRepository) FindByLogin(ctx context.Context, login string) (*models.UserAccount, error) {
	accounts, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := utils.NormalizeLogin(login)
	if wanted == "" {
		return nil, nil
	}
	for i := range accounts {
		if utils.NormalizeLogin(accounts[i].Login) == wanted {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

func (r *userRowStoreRepository) GetClinicID(ctx context.Context, login string) (string, error) {
	user, err := r.FindByLogin(ctx, login)
	if err != nil || user == nil || !user.HasClinic() {
		return "", err
	}
	return user.ClinicID, nil
}

func (r *userRowStoreRepository) List(ctx context.Context) ([]models.UserAccount, error) {
	return r.readAll(ctx)
}

func (r *userRowStoreRepository) Create(ctx context.Context, user *models.UserAccount) error {
	return r.RowStore.AppendRow(ctx, r.MainContainer, constvars.SheetUsers, user.ToRow())
}

func (r *userRowStoreRepository) UpdatePasswordHash(ctx context.Context, user *models.UserAccount, passwordHash string) error {
	return r.RowStore.UpdateCell(ctx, r.MainContainer, cellAddress(passwordHashColumn, user.RowIndex), passwordHash)
}

func (r *userRowStoreRepository) Deactivate(ctx context.Context, user *models.UserAccount) error {
	return r.RowStore.UpdateCell(ctx, r.MainContainer, cellAddress(activeColumn, user.RowIndex), strconv.FormatBool(false))
}

func (r *userRowStoreRepository) EnsureSheet(ctx context.Context) error {
	return r.RowStore.EnsureSheet(ctx, r.MainContainer, constvars.SheetUsers, constvars.UsersSheetHeader)
}

func (r *userRowStoreRepository) readAll(ctx context.Context) ([]models.UserAccount, error) {
	rows, err := r.RowStore.ReadRange(ctx, r.MainContainer, constvars.RangeUsers)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return []models.UserAccount{}, nil
	}

	accounts := make([]models.UserAccount, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		accounts = append(accounts, *models.UserAccountFromRow(row, i+2))
	}
	return accounts, nil
}

func cellAddress(column string, rowIndex int) string {
	return fmt.Sprintf("%s!%s%d", constvars.SheetUsers, column, rowIndex)
}
