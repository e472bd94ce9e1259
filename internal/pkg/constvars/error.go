package constvars

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gte":      "must be greater than or equal to %s",
	"login":    "must contain only letters, digits, dots, dashes or underscores",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "something went wrong with the application"
	ErrClientInvalidCredentials            = "invalid credentials"
	ErrClientAccountDisabled               = "account disabled"
	ErrClientRateLimited                   = "too many login attempts, please try again in %d minutes"
	ErrClientNotAuthorized                 = "Не авторизован"
	ErrClientForbidden                     = "Доступ запрещён"
	ErrClientQuotaExhausted                = "clinic credits are exhausted, please contact your administrator"
	ErrClientCreditsBusy                   = "another consultation of this clinic is being saved, please retry"
	ErrClientUpstreamUnavailable           = "service temporarily unavailable"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientLoginAlreadyExists            = "login already exists"
	ErrClientUserNotFound                  = "user not found"
	ErrClientRecordNotFound                = "record not found"
	ErrClientAudioRequired                 = "no audio file provided"
)

// Machine-checkable error codes, rendered next to the client message
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled     = "ACCOUNT_DISABLED"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeQuotaExhausted      = "QUOTA_EXHAUSTED"
	ErrCodeCreditsBusy         = "CREDITS_BUSY"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeDeadlineExceeded    = "DEADLINE_EXCEEDED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// Error messages for developers
const (
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON body"
	ErrDevCannotParseMultipartForm    = "cannot parse multipart form"
	ErrDevURLParamValidationFailed    = "url param %s is invalid"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevInvalidCredentials          = "invalid credentials for login %s"
	ErrDevAccountDisabled             = "account %s is disabled"
	ErrDevRateLimited                 = "rate limit exceeded for key %s"
	ErrDevSessionTokenMissing         = "session token missing"
	ErrDevSessionTokenInvalid         = "session token invalid"
	ErrDevRoleNotAllowed              = "role %s is not allowed, required %s"
	ErrDevQuotaExhausted              = "clinic %s has no remaining credits"
	ErrDevCreditsBusy                 = "credit lock for clinic %s is held by another request"
	ErrDevRowStoreUnavailable         = "row store operation %s failed"
	ErrDevSettingsMissingUsedCredits  = "Settings sheet missing used_credits row"
	ErrDevInvalidCellReference        = "invalid cell reference %s"
	ErrDevInvalidRangeReference       = "invalid range reference %s"
	ErrDevAnalysisProviderUnavailable = "analysis provider call %s failed"
	ErrDevAnalysisEmptyContent        = "analysis provider returned no content"
	ErrDevRateLimitStoreUnavailable   = "rate limit store unavailable"
	ErrDevLockStoreUnavailable        = "lock store unavailable"
	ErrDevRedisUnlock                 = "lock not owned by this client"
	ErrDevLoginAlreadyExists          = "login %s already exists"
	ErrDevUserNotFound                = "user %s not found"
	ErrDevRecordNotFound              = "row %d not found"
	ErrDevHashPassword                = "failed to hash password"
	ErrDevSignSessionToken            = "failed to sign session token"
	ErrDevAudioRequired               = "multipart field audio is missing"
	ErrDevArchiveUpload               = "failed to archive audio"
	ErrDevPublishEvent                = "failed to publish event"
)
