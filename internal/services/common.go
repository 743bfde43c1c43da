package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/logger"
	"cars2customer_backend/pkg/apperrors"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashError maps a HashPassword failure; field is the request's JSON name.
func hashError(field string, err error) error {
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return apperrors.ValidationError(map[string]string{
			field: "Must be at most 72 bytes long",
		})
	}
	return apperrors.InternalError(err)
}

// withLock runs fn while holding the keyed lock.
func withLock(ctx context.Context, locker lock.Locker, key string, fn func() error) error {
	unlock, err := locker.Lock(ctx, key)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to acquire lock", err, "key", key)
		return apperrors.InternalError(err)
	}
	defer unlock()
	return fn()
}

// Clock is overridable in tests.
type Clock func() time.Time

func defaultClock(c Clock) Clock {
	if c == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return c
}
