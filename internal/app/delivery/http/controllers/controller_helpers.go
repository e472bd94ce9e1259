package controllers

import (
	"context"
	"errors"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/pkg/exceptions"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

func requestTimeout(internalConfig *config.InternalConfig) time.Duration {
	if internalConfig == nil || internalConfig.App.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
}

// deadlineAware maps an expired request context to 504 and leaves other errors as they are.
func deadlineAware(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}
