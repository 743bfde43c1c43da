package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupStore migrates TEST_DB_DSN and empties the tables afterwards.
func setupStore(t *testing.T) *repositories.Store {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.UserRow{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.AdminRow{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.CarRow{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.BookingRow{})
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewStore(db)
}

func TestUserOTPLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	email := uuid.NewString() + "@example.com"
	grant := repositories.OTPGrant{Code: "482913", ExpiresAt: now.Add(15 * time.Minute)}

	require.NoError(t, store.Users.UpsertPendingOTP(ctx, email, grant))

	_, err := store.Users.CompleteRegistration(ctx, email, "000000", now, repositories.Registration{PasswordHash: "h", UniqueID: "u-1"})
	assert.ErrorIs(t, err, repositories.ErrOTPRejected)

	user, err := store.Users.CompleteRegistration(ctx, email, "482913", now, repositories.Registration{PasswordHash: "h", UniqueID: uuid.NewString()})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.OTP)
	assert.Empty(t, user.Favorites)

	_, err = store.Users.CompleteRegistration(ctx, email, "482913", now, repositories.Registration{PasswordHash: "h2", UniqueID: "u-2"})
	assert.ErrorIs(t, err, repositories.ErrOTPRejected)

	err = store.Users.UpsertPendingOTP(ctx, email, grant)
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyVerified)
}

func TestFavoritesAndTopAdmin(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	uniqueID := uuid.NewString()

	require.NoError(t, store.Users.CreateVerified(ctx, &models.User{Email: uniqueID + "@example.com", UniqueID: uniqueID}))

	car := models.Car{CarID: "car-" + uniqueID[:8], Brand: "BMW", Model: "X5", Images: []string{"a.jpg"}}
	favorites, err := store.Users.AddFavorite(ctx, uniqueID, car)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "X5", favorites[0].Model)

	_, err = store.Users.AddFavorite(ctx, uniqueID, car)
	assert.ErrorIs(t, err, repositories.ErrAlreadyFavorited)

	favorites, err = store.Users.RemoveFavorite(ctx, uniqueID, car.CarID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	top := &models.Admin{Email: "top-" + uniqueID + "@example.com", PasswordHash: "h", UniqueID: "top-" + uniqueID, IsTopAdmin: true}
	require.NoError(t, store.Admins.Create(ctx, top))

	err = store.Admins.Delete(ctx, top.UniqueID)
	assert.ErrorIs(t, err, repositories.ErrAdminNotFound)

	second := &models.Admin{Email: "other-" + uniqueID + "@example.com", PasswordHash: "h", UniqueID: "other-" + uniqueID, IsTopAdmin: true}
	assert.ErrorIs(t, store.Admins.Create(ctx, second), repositories.ErrTopAdminExists)
}

func TestBookingStatus(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	booking := &models.CarBooking{Username: "Dana", PhoneNumber: "+100", ContactID: "c-1", CarName: "BMW X5", CurrentTime: time.Now().UTC()}
	require.NoError(t, store.Bookings.Create(ctx, booking))
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	updated, err := store.Bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusBooked, updated.Status)

	require.NoError(t, store.Bookings.Delete(ctx, booking.ID))
	_, err = store.Bookings.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, repositories.ErrBookingNotFound)
	_, err = store.Bookings.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repositories.ErrBookingNotFound)
}
