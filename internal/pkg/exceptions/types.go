package exceptions

import (
	"fmt"
	"jazaidoc-service/internal/pkg/constvars"
)

// Authentication and authorization
var (
	ErrInvalidCredentials = func(err error, login string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrCodeInvalidCredentials, constvars.ErrClientInvalidCredentials, fmt.Sprintf(constvars.ErrDevInvalidCredentials, login))
	}
	ErrAccountDisabled = func(err error, login string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrCodeAccountDisabled, constvars.ErrClientAccountDisabled, fmt.Sprintf(constvars.ErrDevAccountDisabled, login))
	}
	ErrRateLimited = func(err error, key string, retryAfterMinutes int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrCodeRateLimited, fmt.Sprintf(constvars.ErrClientRateLimited, retryAfterMinutes), fmt.Sprintf(constvars.ErrDevRateLimited, key))
	}
	ErrSessionTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrCodeUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevSessionTokenMissing)
	}
	ErrSessionTokenInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrCodeUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevSessionTokenInvalid)
	}
	ErrForbiddenRole = func(err error, role, requiredRole string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrCodeForbidden, constvars.ErrClientForbidden, fmt.Sprintf(constvars.ErrDevRoleNotAllowed, role, requiredRole))
	}
	ErrSignSessionToken = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSignSessionToken)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevHashPassword)
	}
)

// Credits
var (
	ErrQuotaExhausted = func(err error, clinicID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrCodeQuotaExhausted, constvars.ErrClientQuotaExhausted, fmt.Sprintf(constvars.ErrDevQuotaExhausted, clinicID))
	}
	ErrCreditsBusy = func(err error, clinicID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrCodeCreditsBusy, constvars.ErrClientCreditsBusy, fmt.Sprintf(constvars.ErrDevCreditsBusy, clinicID))
	}
	ErrSettingsMissingUsedCredits = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevSettingsMissingUsedCredits)
	}
)

// Upstream collaborators
var (
	ErrRowStore = func(err error, operation string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevRowStoreUnavailable, operation))
	}
	ErrInvalidCellReference = func(err error, reference string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidCellReference, reference))
	}
	ErrInvalidRangeReference = func(err error, reference string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidRangeReference, reference))
	}
	ErrAnalysisProvider = func(err error, call string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevAnalysisProviderUnavailable, call))
	}
	ErrAnalysisEmptyContent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevAnalysisEmptyContent)
	}
	ErrRateLimitStore = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevRateLimitStoreUnavailable)
	}
	ErrLockStore = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevLockStoreUnavailable)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrArchiveUpload = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevArchiveUpload)
	}
	ErrPublishEvent = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrCodeUpstreamUnavailable, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevPublishEvent)
	}
)

// Request handling
var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeValidationFailed, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrAudioRequired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeBadRequest, constvars.ErrClientAudioRequired, constvars.ErrDevAudioRequired)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrCodeDeadlineExceeded, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrLoginAlreadyExists = func(err error, login string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrCodeConflict, constvars.ErrClientLoginAlreadyExists, fmt.Sprintf(constvars.ErrDevLoginAlreadyExists, login))
	}
	ErrUserNotFound = func(err error, login string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrCodeNotFound, constvars.ErrClientUserNotFound, fmt.Sprintf(constvars.ErrDevUserNotFound, login))
	}
	ErrRecordNotFound = func(err error, rowIndex int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrCodeNotFound, constvars.ErrClientRecordNotFound, fmt.Sprintf(constvars.ErrDevRecordNotFound, rowIndex))
	}
)
