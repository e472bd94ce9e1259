package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_PAYLOAD_KEY      ContextKey = "session_payload"
)

const (
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	RowStoreDriverExcel  = "excel"
	RowStoreDriverMongo  = "mongo"
	RowStoreDriverMemory = "memory"

	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"

	CreditsEnforcementSoft   = "soft"
	CreditsEnforcementStrict = "strict"
)

// Sheet layout of the row store.
const (
	SheetUsers    = "Users"
	SheetSettings = "Settings"

	RangeUsers    = "Users!A:G"
	RangeSettings = "Settings!A:B"

	// ConsultationsColumns spans patient name through the saved-at timestamp.
	ConsultationsColumns = "A:K"

	SettingsKeyClinicName   = "clinic_name"
	SettingsKeyTotalCredits = "total_credits"
	SettingsKeyUsedCredits  = "used_credits"

	DefaultClinicName   = "Unknown Clinic"
	NoClinicDisplayName = "Без клиники"

	// UnlimitedCredits is reported as the credit count of accounts without a clinic.
	UnlimitedCredits = -1

	ConsultationsHeaderFirstCell = "ФИО пациента"
)

var UsersSheetHeader = []string{"login", "password_hash", "name", "specialty", "role", "active", "clinic_id"}

var ConsultationsSheetHeader = []string{
	ConsultationsHeaderFirstCell,
	"Дата рождения",
	"Дата визита",
	"Жалобы",
	"Анамнез",
	"Диагноз",
	"Лечение",
	"Рекомендации",
	"Врач",
	"Специальность",
	"Сохранено",
}

const (
	BcryptHashPrefix = "$2"
	PasswordHashCost = 12
)

const (
	EventConsultationSaved      = "consultation.saved"
	EventClinicCreditsExhausted = "clinic.credits_exhausted"
)

const (
	CreditLockKeyFormat     = "jazaidoc:credits:lock:%s"
	LoginRateLimitKeyFormat = "login:%s"
	RateLimitRedisKeyPrefix = "jazaidoc:ratelimit:"
	RateLimitScopeLogin     = "login"
)

const MongoCollectionRows = "rows"

const (
	MetricsNamespace = "jazaidoc"
	AudioFormField   = "audio"
)
