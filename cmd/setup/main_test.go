package main

import (
	"context"
	"io"
	"testing"

	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/services/core/clinics"
	"jazaidoc-service/internal/app/services/core/consultations"
	"jazaidoc-service/internal/app/services/core/users"
	"jazaidoc-service/internal/app/services/shared/rowstore"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvisioner(store contracts.RowStore) *provisioner {
	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepository := users.NewUserRowStoreRepository(store, "main")
	return &provisioner{
		RowStore:                 store,
		UserRepository:           userRepository,
		UserUsecase:              users.NewUserUsecase(userRepository, zap.NewNop()),
		ConsultationRepository:   consultations.NewConsultationRowStoreRepository(store, "main", "Consultations"),
		ClinicSettingsRepository: clinics.NewClinicSettingsRepository(store),
		Log:                      log,
	}
}

func TestProvisioner_Run(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemoryRowStore()
	p := newTestProvisioner(store)
	opts := options{
		AdminLogin:    "Admin",
		AdminPassword: "s3cret-pass",
		AdminName:     "Главный врач",
		ClinicID:      "clinic-1",
		ClinicName:    "Клиника Здоровье",
		TotalCredits:  50,
	}

	require.NoError(t, p.Run(ctx, opts))

	userRows, err := store.ReadRange(ctx, "main", constvars.RangeUsers)
	require.NoError(t, err)
	require.Len(t, userRows, 2)
	assert.Equal(t, constvars.UsersSheetHeader, userRows[0])

	consultationRows, err := store.ReadRange(ctx, "main", "Consultations!A:K")
	require.NoError(t, err)
	require.Len(t, consultationRows, 1)
	assert.Equal(t, constvars.ConsultationsHeaderFirstCell, consultationRows[0][0])

	admin, err := p.UserRepository.FindByLogin(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, constvars.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.True(t, utils.VerifyPassword("s3cret-pass", admin.PasswordHash))

	settings, err := p.ClinicSettingsRepository.GetSettings(ctx, "clinic-1")
	require.NoError(t, err)
	assert.Equal(t, "Клиника Здоровье", settings.Credits.ClinicName)
	assert.Equal(t, 50, settings.Credits.TotalCredits)
	assert.Equal(t, 0, settings.Credits.UsedCredits)
	assert.Equal(t, 3, settings.UsedCreditsRow)

	t.Run("second run changes nothing", func(t *testing.T) {
		opts.TotalCredits = 999
		require.NoError(t, p.Run(ctx, opts))

		accounts, err := p.UserRepository.List(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)

		settings, err := p.ClinicSettingsRepository.GetSettings(ctx, "clinic-1")
		require.NoError(t, err)
		assert.Equal(t, 50, settings.Credits.TotalCredits)
	})
}

func TestProvisioner_RunRejectsWeakAdminPassword(t *testing.T) {
	p := newTestProvisioner(rowstore.NewMemoryRowStore())

	err := p.Run(context.Background(), options{AdminLogin: "admin", AdminPassword: "123", AdminName: "Admin"})

	require.Error(t, err)
	accounts, listErr := p.UserRepository.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, accounts)
}

func TestProvisioner_RunWithoutAdmin(t *testing.T) {
	p := newTestProvisioner(rowstore.NewMemoryRowStore())

	require.NoError(t, p.Run(context.Background(), options{}))

	accounts, err := p.UserRepository.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
