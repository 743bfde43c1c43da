package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func grant(code string) repositories.OTPGrant {
	return repositories.OTPGrant{Code: code, ExpiresAt: t0.Add(15 * time.Minute)}
}

func TestUpsertPendingOTPCreatesBareRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.UpsertPendingOTP(ctx, "a@x.io", grant("123456")))

	u, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, u.IsVerified)
	assert.Empty(t, u.UniqueID)
	assert.Empty(t, u.PasswordHash)
	require.NotNil(t, u.OTP)
	assert.Equal(t, "123456", *u.OTP)
	assert.NotNil(t, u.Favorites)
}

func TestUpsertPendingOTPRefusesVerified(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.CreateVerified(ctx, &models.User{Email: "a@x.io", UniqueID: "u-1", PasswordHash: "h"}))

	err := repo.UpsertPendingOTP(ctx, "a@x.io", grant("123456"))
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyVerified)

	u, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Nil(t, u.OTP)
	assert.Equal(t, "u-1", u.UniqueID)
}

func TestCompleteRegistrationIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.UpsertPendingOTP(ctx, "a@x.io", grant("123456")))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CompleteRegistration(ctx, "a@x.io", "123456", t0, repositories.Registration{PasswordHash: "h", UniqueID: "u"})
			if err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, repositories.ErrOTPRejected)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestCompleteRegistrationRejectsExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.UpsertPendingOTP(ctx, "a@x.io", grant("123456")))

	_, err := repo.CompleteRegistration(ctx, "a@x.io", "123456", t0.Add(15*time.Minute), repositories.Registration{PasswordHash: "h", UniqueID: "u"})
	assert.ErrorIs(t, err, repositories.ErrOTPRejected)

	u, err := repo.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, u.IsVerified)
	assert.NotNil(t, u.OTP)
}

func TestFavoritesAreSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.CreateVerified(ctx, &models.User{Email: "a@x.io", UniqueID: "u-1"}))

	car := models.Car{CarID: "c1", Brand: "BMW", Images: []string{"a.jpg"}}
	favs, err := repo.AddFavorite(ctx, "u-1", car)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	car.Images[0] = "changed.jpg"
	u, err := repo.FindByUniqueID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", u.Favorites[0].Images[0])

	_, err = repo.AddFavorite(ctx, "u-1", car)
	assert.ErrorIs(t, err, repositories.ErrAlreadyFavorited)

	favs, err = repo.RemoveFavorite(ctx, "u-1", "c1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	_, err = repo.RemoveFavorite(ctx, "u-1", "c1")
	assert.ErrorIs(t, err, repositories.ErrFavoriteNotFound)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.UpsertPendingOTP(ctx, "stale@x.io", grant("111111")))
	require.NoError(t, repo.CreateVerified(ctx, &models.User{Email: "v@x.io", UniqueID: "u-1"}))
	require.NoError(t, repo.SetOTP(ctx, "v@x.io", grant("222222")))

	later := t0.Add(time.Hour)
	n, err := repo.ClearExpiredOTPs(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteStaleUnverified(ctx, later.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteStaleUnverified(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByEmail(ctx, "stale@x.io")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	v, err := repo.FindByEmail(ctx, "v@x.io")
	require.NoError(t, err)
	assert.Nil(t, v.OTP)
}
