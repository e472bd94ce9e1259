package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingLoginKey          = "login"
	LoggingRoleKey           = "role"
	LoggingClinicIDKey       = "clinic_id"
	LoggingContainerKey      = "container"
	LoggingRangeKey          = "range"
	LoggingRowIndexKey       = "row_index"
	LoggingRateLimitKey      = "rate_limit_key"
	LoggingRemainingKey      = "remaining_credits"
	LoggingTotalCreditsKey   = "total_credits"
	LoggingUsedCreditsKey    = "used_credits"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingEventTypeKey      = "event_type"
	LoggingQueueKey          = "queue"
	LoggingObjectNameKey     = "object_name"
	LoggingBucketKey         = "bucket"
	LoggingFileSizeKey       = "file_size"
	LoggingTranscriptLenKey  = "transcript_length"
	LoggingCountKey          = "count"
	LoggingErrorCodeKey      = "error_code"
	LoggingLocationKey       = "location"
	LoggingTimezoneKey       = "timezone"
	LoggingRemovedKey        = "removed"
	LoggingDirectoryKey      = "directory"
	LoggingAddressKey        = "address"
)
