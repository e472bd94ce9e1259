package main

import (
	"context"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"
	"jazaidoc-service/internal/app/delivery/http/routers"
	"jazaidoc-service/internal/app/drivers/database"
	"jazaidoc-service/internal/app/drivers/logger"
	"jazaidoc-service/internal/app/drivers/messaging"
	"jazaidoc-service/internal/app/drivers/storage"
	analysisUsecase "jazaidoc-service/internal/app/services/core/analysis"
	"jazaidoc-service/internal/app/services/core/auth"
	"jazaidoc-service/internal/app/services/core/clinics"
	"jazaidoc-service/internal/app/services/core/consultations"
	"jazaidoc-service/internal/app/services/core/users"
	"jazaidoc-service/internal/app/services/shared/analysis"
	"jazaidoc-service/internal/app/services/shared/events"
	"jazaidoc-service/internal/app/services/shared/locker"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/app/services/shared/ratelimiter"
	"jazaidoc-service/internal/app/services/shared/redis"
	"jazaidoc-service/internal/app/services/shared/rowstore"
	"jazaidoc-service/internal/app/services/shared/session"
	audioStorage "jazaidoc-service/internal/app/services/shared/storage"
	"jazaidoc-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultSweepInterval = 10 * time.Minute

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	if err := session.ValidateSecret(internalConfig.Session.Secret); err != nil {
		log.Fatal("Invalid SESSION_SECRET", zap.Error(err))
	}
	if internalConfig.UsesDefaultSessionSecret() {
		if internalConfig.App.Env == constvars.AppEnvProduction {
			log.Fatal("SESSION_SECRET must be set in production")
		}
		log.Warn("SESSION_SECRET is not set, using the built-in development secret")
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.RowStore.Driver == constvars.RowStoreDriverMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig, log)
	}
	if internalConfig.NeedsRedis() {
		bootstrap.Redis = database.NewRedisClient(driverConfig, log)
	}
	if internalConfig.Archive.Enabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, log)
	}
	if internalConfig.Events.Queue != "" {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, log)
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String(constvars.LoggingAddressKey, internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Metrics
	m := metrics.NewMetrics(constvars.MetricsNamespace)

	// Row store
	rowStore := newRowStore(bootstrap)

	// Redis
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	}

	// Rate limiter
	var rateLimitStore contracts.RateLimitStore
	if internalConfig.RateLimit.Store == constvars.RateLimitStoreRedis {
		rateLimitStore = ratelimiter.NewRedisStore(redisRepository)
	} else {
		sweepInterval := time.Duration(internalConfig.RateLimit.SweepIntervalInMinute) * time.Minute
		if sweepInterval <= 0 {
			sweepInterval = defaultSweepInterval
		}
		memoryStore := ratelimiter.NewMemoryStore()
		bootstrap.WorkerStop = memoryStore.StartSweeper(
			sweepInterval,
			func(removed int) {
				log.Debug("Rate limit sweep finished", zap.Int(constvars.LoggingRemovedKey, removed))
			},
		)
		rateLimitStore = memoryStore
	}
	loginRateLimiter := ratelimiter.NewLimiter(rateLimitStore, constvars.RateLimitScopeLogin, m, log)

	// Locker
	var lockerService contracts.LockerService
	if internalConfig.Credits.Enforcement == constvars.CreditsEnforcementStrict {
		lockerService = locker.NewLockService(redisRepository, log)
	}

	// Events
	eventPublisher := events.NewNoopPublisher()
	if bootstrap.RabbitMQ != nil {
		publisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.Events.Queue, log)
		if err != nil {
			log.Fatal("Failed to declare the events queue", zap.Error(err))
		}
		eventPublisher = publisher
	}

	// Audio archive
	var audioArchive contracts.AudioArchive
	if bootstrap.Minio != nil {
		audioArchive = audioStorage.NewMinioAudioArchive(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName, log)
	}

	// Session
	sessionTokenService := session.NewSessionTokenService(internalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, sessionTokenService, loginRateLimiter, m, internalConfig)

	// User
	userRepository := users.NewUserRowStoreRepository(rowStore, internalConfig.RowStore.MainContainer)
	userUsecase := users.NewUserUsecase(userRepository, log)

	// Auth
	authUsecase := auth.NewAuthUsecase(userRepository, sessionTokenService, m, log)

	// Clinic credits
	clinicSettingsRepository := clinics.NewClinicSettingsRepository(rowStore)
	creditLedger := clinics.NewCreditLedger(userRepository, clinicSettingsRepository, m, log)
	creditUsecase := clinics.NewCreditUsecase(creditLedger, log)

	// Consultation
	consultationRepository := consultations.NewConsultationRowStoreRepository(
		rowStore,
		internalConfig.RowStore.MainContainer,
		internalConfig.RowStore.ConsultationsSheet,
	)
	consultationUsecase := consultations.NewConsultationUsecase(
		consultationRepository,
		creditLedger,
		lockerService,
		eventPublisher,
		m,
		internalConfig,
		log,
	)

	// Analysis
	analysisProvider := analysis.NewOpenAIProvider(internalConfig, log)
	audioAnalysisUsecase := analysisUsecase.NewAnalysisUsecase(analysisProvider, audioArchive, m, internalConfig, log)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, m, &routers.Controllers{
		Auth:         controllers.NewAuthController(log, authUsecase, internalConfig),
		User:         controllers.NewUserController(log, userUsecase, internalConfig),
		Credit:       controllers.NewCreditController(log, creditUsecase, internalConfig),
		Consultation: controllers.NewConsultationController(log, consultationUsecase, internalConfig),
		Analysis:     controllers.NewAnalysisController(log, audioAnalysisUsecase, internalConfig),
	})
}

func newRowStore(bootstrap *config.Bootstrap) contracts.RowStore {
	log := bootstrap.Logger
	rowStoreConfig := bootstrap.InternalConfig.RowStore

	switch rowStoreConfig.Driver {
	case constvars.RowStoreDriverMongo:
		return rowstore.NewMongoRowStore(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, log)
	case constvars.RowStoreDriverMemory:
		log.Warn("Using the in-memory row store, data is lost on restart")
		return rowstore.NewMemoryRowStore()
	default:
		rowStore, err := rowstore.NewExcelRowStore(rowStoreConfig.ExcelDirectory, log)
		if err != nil {
			log.Fatal("Failed to open the excel row store",
				zap.String(constvars.LoggingDirectoryKey, rowStoreConfig.ExcelDirectory),
				zap.Error(err),
			)
		}
		return rowStore
	}
}
