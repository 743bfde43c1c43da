package workers

import (
	"context"
	"testing"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPCleanupWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	// abandoned two days ago
	require.NoError(t, users.UpsertPendingOTP(ctx, "stale@x.com", repositories.OTPGrant{Code: "111111", ExpiresAt: now.Add(-48 * time.Hour)}))
	// expired a minute ago, still within retention
	require.NoError(t, users.UpsertPendingOTP(ctx, "recent@x.com", repositories.OTPGrant{Code: "222222", ExpiresAt: now.Add(-time.Minute)}))
	// verified account with a leftover reset code
	require.NoError(t, users.CreateVerified(ctx, &models.User{Email: "done@x.com", UniqueID: "u1"}))
	require.NoError(t, users.SetOTP(ctx, "done@x.com", repositories.OTPGrant{Code: "333333", ExpiresAt: now.Add(-time.Minute)}))
	// verified account with a live reset code
	require.NoError(t, users.CreateVerified(ctx, &models.User{Email: "live@x.com", UniqueID: "u2"}))
	require.NoError(t, users.SetOTP(ctx, "live@x.com", repositories.OTPGrant{Code: "444444", ExpiresAt: now.Add(time.Minute)}))

	w := NewOTPCleanupWorker(users, "", 24*time.Hour)
	w.now = func() time.Time { return now }
	w.RunOnce(ctx)

	_, err := users.FindByEmail(ctx, "stale@x.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	recent, err := users.FindByEmail(ctx, "recent@x.com")
	require.NoError(t, err)
	assert.NotNil(t, recent.OTP)

	done, err := users.FindByEmail(ctx, "done@x.com")
	require.NoError(t, err)
	assert.Nil(t, done.OTP)
	assert.Nil(t, done.OTPExpiry)

	live, err := users.FindByEmail(ctx, "live@x.com")
	require.NoError(t, err)
	require.NotNil(t, live.OTP)
	assert.Equal(t, "444444", *live.OTP)
}

func TestOTPCleanupWorker_StartRejectsBadSchedule(t *testing.T) {
	w := NewOTPCleanupWorker(memory.NewUserRepository(), "not a schedule", time.Hour)
	assert.Error(t, w.Start(context.Background()))
}

func TestOTPCleanupWorker_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewOTPCleanupWorker(memory.NewUserRepository(), "@every 1h", time.Hour)
	require.NoError(t, w.Start(ctx))
	cancel()
}
