package config

import "jazaidoc-service/internal/pkg/constvars"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)

type (
	InternalConfig struct {
		App       App
		Session   Session
		RateLimit RateLimit
		RowStore  RowStore
		Credits   Credits
		Analysis  Analysis
		Archive   Archive
		Events    Events
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		RequestTimeoutInSeconds    int
		RequestBodyLimitInMegabyte int
		TrustProxyHeaders          bool
	}

	Session struct {
		Secret     string
		TTLInHours int
	}

	RateLimit struct {
		Store                 string
		LoginMaxAttempts      int
		LoginWindowInMinutes  int
		SweepIntervalInMinute int
	}

	RowStore struct {
		Driver             string
		ExcelDirectory     string
		MainContainer      string
		ConsultationsSheet string
	}

	Credits struct {
		Enforcement      string
		LockTTLInSeconds int
	}

	Analysis struct {
		BaseUrl              string
		ApiKey               string
		TranscriptionModel   string
		CompletionModel      string
		Language             string
		TimeoutInSeconds     int
		MaxRequestsPerSecond int
	}

	Archive struct {
		Enabled bool
	}

	Events struct {
		Queue string
	}
)

func (c *InternalConfig) NeedsRedis() bool {
	return c.RateLimit.Store == constvars.RateLimitStoreRedis || c.Credits.Enforcement == constvars.CreditsEnforcementStrict
}
