package config

import (
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "jazai-doc-secret-change-in-prod"

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "jazaidoc"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "consultation-audio"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Almaty"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 25),
			TrustProxyHeaders:          utils.GetEnvBool("APP_TRUST_PROXY_HEADERS", false),
		},
		Session: Session{
			Secret:     utils.GetEnvString("SESSION_SECRET", defaultSessionSecret),
			TTLInHours: utils.GetEnvInt("SESSION_TTL_IN_HOURS", 0),
		},
		RateLimit: RateLimit{
			Store:                 utils.GetEnvString("RATE_LIMIT_STORE", constvars.RateLimitStoreMemory),
			LoginMaxAttempts:      utils.GetEnvInt("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", 5),
			LoginWindowInMinutes:  utils.GetEnvInt("LOGIN_RATE_LIMIT_WINDOW_IN_MINUTES", 15),
			SweepIntervalInMinute: utils.GetEnvInt("RATE_LIMIT_SWEEP_INTERVAL_IN_MINUTES", 10),
		},
		RowStore: RowStore{
			Driver:             utils.GetEnvString("ROWSTORE_DRIVER", constvars.RowStoreDriverExcel),
			ExcelDirectory:     utils.GetEnvString("ROWSTORE_EXCEL_DIRECTORY", "./data"),
			MainContainer:      utils.GetEnvString("ROWSTORE_MAIN_CONTAINER", "main"),
			ConsultationsSheet: utils.GetEnvString("ROWSTORE_CONSULTATIONS_SHEET", "Consultations"),
		},
		Credits: Credits{
			Enforcement:      utils.GetEnvString("CREDITS_ENFORCEMENT", constvars.CreditsEnforcementSoft),
			LockTTLInSeconds: utils.GetEnvInt("CREDITS_LOCK_TTL_IN_SECONDS", 30),
		},
		Analysis: Analysis{
			BaseUrl:              utils.GetEnvString("ANALYSIS_PROVIDER_BASE_URL", "https://api.openai.com/v1"),
			ApiKey:               utils.GetEnvString("ANALYSIS_PROVIDER_API_KEY", ""),
			TranscriptionModel:   utils.GetEnvString("ANALYSIS_TRANSCRIPTION_MODEL", "whisper-1"),
			CompletionModel:      utils.GetEnvString("ANALYSIS_COMPLETION_MODEL", "gpt-4o"),
			Language:             utils.GetEnvString("ANALYSIS_LANGUAGE", "ru"),
			TimeoutInSeconds:     utils.GetEnvInt("ANALYSIS_TIMEOUT_IN_SECONDS", 60),
			MaxRequestsPerSecond: utils.GetEnvInt("ANALYSIS_MAX_REQUESTS_PER_SECOND", 2),
		},
		Archive: Archive{
			Enabled: utils.GetEnvBool("AUDIO_ARCHIVE_ENABLED", false),
		},
		Events: Events{
			Queue: utils.GetEnvString("EVENTS_QUEUE", ""),
		},
	}
}

// UsesDefaultSessionSecret reports whether SESSION_SECRET was left unset.
func (c *InternalConfig) UsesDefaultSessionSecret() bool {
	return c.Session.Secret == defaultSessionSecret
}
