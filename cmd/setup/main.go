package main

import (
	"context"
	"errors"
	"flag"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/drivers/database"
	"jazaidoc-service/internal/app/drivers/logger"
	"jazaidoc-service/internal/app/services/core/clinics"
	"jazaidoc-service/internal/app/services/core/consultations"
	"jazaidoc-service/internal/app/services/core/users"
	"jazaidoc-service/internal/app/services/shared/rowstore"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"jazaidoc-service/internal/pkg/exceptions"
	"jazaidoc-service/internal/pkg/utils"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type options struct {
	AdminLogin    string
	AdminPassword string
	AdminName     string
	ClinicID      string
	ClinicName    string
	TotalCredits  int
}

// indexEnsurer is implemented by row stores that need indexes before first use.
type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

type provisioner struct {
	RowStore                 contracts.RowStore
	UserRepository           contracts.UserRepository
	UserUsecase              contracts.UserUsecase
	ConsultationRepository   contracts.ConsultationRepository
	ClinicSettingsRepository contracts.ClinicSettingsRepository
	Log                      *logrus.Logger
}

func main() {
	opts := options{}
	flag.StringVar(&opts.AdminLogin, "admin-login", "admin", "login of the first admin account, empty to skip")
	flag.StringVar(&opts.AdminName, "admin-name", "Administrator", "display name of the first admin account")
	flag.StringVar(&opts.ClinicID, "clinic-id", "", "container id of a clinic whose Settings sheet should be seeded")
	flag.StringVar(&opts.ClinicName, "clinic-name", "", "clinic name written to the Settings sheet")
	flag.IntVar(&opts.TotalCredits, "total-credits", 0, "total credits written to the Settings sheet")
	flag.Parse()
	opts.AdminPassword = utils.GetEnvString("SETUP_ADMIN_PASSWORD", "")

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rowStore, closeRowStore, err := openRowStore(ctx, driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error opening the row store: %v", err)
	}
	defer closeRowStore()

	userRepository := users.NewUserRowStoreRepository(rowStore, internalConfig.RowStore.MainContainer)
	p := &provisioner{
		RowStore:       rowStore,
		UserRepository: userRepository,
		UserUsecase:    users.NewUserUsecase(userRepository, zap.NewNop()),
		ConsultationRepository: consultations.NewConsultationRowStoreRepository(
			rowStore,
			internalConfig.RowStore.MainContainer,
			internalConfig.RowStore.ConsultationsSheet,
		),
		ClinicSettingsRepository: clinics.NewClinicSettingsRepository(rowStore),
		Log:                      log,
	}

	if err := p.Run(ctx, opts); err != nil {
		log.Errorf("Setup failed: %v", err)
		closeRowStore()
		os.Exit(1)
	}
	log.Info("Setup finished")
}

func openRowStore(ctx context.Context, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) (contracts.RowStore, func(), error) {
	driverLog := logger.NewZapLogger(driverConfig, internalConfig)

	switch internalConfig.RowStore.Driver {
	case constvars.RowStoreDriverMongo:
		mongoDB := database.NewMongoDB(driverConfig, driverLog)
		closeFn := func() { mongoDB.Disconnect(context.Background()) }
		return rowstore.NewMongoRowStore(mongoDB, driverConfig.MongoDB.DbName, driverLog), closeFn, nil
	case constvars.RowStoreDriverMemory:
		return nil, nil, errors.New("the memory row store cannot be provisioned")
	default:
		rowStore, err := rowstore.NewExcelRowStore(internalConfig.RowStore.ExcelDirectory, driverLog)
		return rowStore, func() {}, err
	}
}

// Run is safe to repeat: existing sheets, accounts and settings are left as they are.
func (p *provisioner) Run(ctx context.Context, opts options) error {
	if ensurer, ok := p.RowStore.(indexEnsurer); ok {
		if err := ensurer.EnsureIndexes(ctx); err != nil {
			return err
		}
		p.Log.Info("Row store indexes are in place")
	}

	if err := p.UserRepository.EnsureSheet(ctx); err != nil {
		return err
	}
	p.Log.Infof("Sheet %s is in place", constvars.SheetUsers)

	if err := p.ConsultationRepository.EnsureSheet(ctx); err != nil {
		return err
	}
	p.Log.Info("Consultations sheet is in place")

	if opts.AdminLogin != "" {
		if err := p.createAdmin(ctx, opts); err != nil {
			return err
		}
	}

	if opts.ClinicID != "" {
		return p.seedClinicSettings(ctx, opts)
	}
	return nil
}

func (p *provisioner) createAdmin(ctx context.Context, opts options) error {
	request := &requests.CreateUser{
		Login:    opts.AdminLogin,
		Password: opts.AdminPassword,
		Name:     opts.AdminName,
		Role:     constvars.RoleAdmin,
	}
	utils.SanitizeCreateUserRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	account, err := p.UserUsecase.CreateUser(ctx, request)
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.ErrorCode == constvars.ErrCodeConflict {
			p.Log.WithField(constvars.LoggingLoginKey, request.Login).Info("Admin account already exists, skipping")
			return nil
		}
		return err
	}

	p.Log.WithFields(logrus.Fields{
		constvars.LoggingLoginKey: account.Login,
		constvars.LoggingRoleKey:  account.Role,
	}).Info("Admin account created")
	return nil
}

func (p *provisioner) seedClinicSettings(ctx context.Context, opts options) error {
	settings, err := p.ClinicSettingsRepository.GetSettings(ctx, opts.ClinicID)
	if err != nil {
		return err
	}
	if settings.UsedCreditsRow > 0 {
		p.Log.WithFields(logrus.Fields{
			constvars.LoggingClinicIDKey:     opts.ClinicID,
			constvars.LoggingTotalCreditsKey: settings.Credits.TotalCredits,
			constvars.LoggingUsedCreditsKey:  settings.Credits.UsedCredits,
		}).Info("Clinic settings already exist, skipping")
		return nil
	}

	rows := [][]string{
		{constvars.SettingsKeyClinicName, opts.ClinicName},
		{constvars.SettingsKeyTotalCredits, strconv.Itoa(opts.TotalCredits)},
		{constvars.SettingsKeyUsedCredits, "0"},
	}
	for _, row := range rows {
		if err := p.RowStore.AppendRow(ctx, opts.ClinicID, constvars.SheetSettings, row); err != nil {
			return err
		}
	}

	p.Log.WithFields(logrus.Fields{
		constvars.LoggingClinicIDKey:     opts.ClinicID,
		constvars.LoggingTotalCreditsKey: opts.TotalCredits,
	}).Info("Clinic settings seeded")
	return nil
}
