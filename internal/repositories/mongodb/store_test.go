package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// setupStore connects to TEST_MONGO_URI and uses a throwaway database.
func setupStore(t *testing.T) *repositories.Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("c2c_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewStore(client, db)
}

func TestUserOTPLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	grant := repositories.OTPGrant{Code: "482913", ExpiresAt: now.Add(15 * time.Minute)}

	require.NoError(t, store.Users.UpsertPendingOTP(ctx, "buyer@example.com", grant))

	_, err := store.Users.CompleteRegistration(ctx, "buyer@example.com", "000000", now, repositories.Registration{PasswordHash: "h", UniqueID: "u-1"})
	assert.ErrorIs(t, err, repositories.ErrOTPRejected)

	user, err := store.Users.CompleteRegistration(ctx, "buyer@example.com", "482913", now, repositories.Registration{PasswordHash: "h", UniqueID: "u-1"})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.OTP)
	assert.Empty(t, user.Favorites)

	_, err = store.Users.CompleteRegistration(ctx, "buyer@example.com", "482913", now, repositories.Registration{PasswordHash: "h", UniqueID: "u-2"})
	assert.ErrorIs(t, err, repositories.ErrOTPRejected)

	err = store.Users.UpsertPendingOTP(ctx, "buyer@example.com", grant)
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyVerified)

	stored, err := store.Users.FindByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", stored.UniqueID)
	assert.Nil(t, stored.OTP)
}

func TestFavoritesConditionalUpdates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Users.CreateVerified(ctx, &models.User{Email: "a@example.com", UniqueID: "u-1"}))
	car := models.Car{CarID: "c-1", Brand: "Audi", Model: "A4"}

	favs, err := store.Users.AddFavorite(ctx, "u-1", car)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	_, err = store.Users.AddFavorite(ctx, "u-1", car)
	assert.ErrorIs(t, err, repositories.ErrAlreadyFavorited)

	_, err = store.Users.AddFavorite(ctx, "missing", car)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	favs, err = store.Users.RemoveFavorite(ctx, "u-1", "c-1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	_, err = store.Users.RemoveFavorite(ctx, "u-1", "c-1")
	assert.ErrorIs(t, err, repositories.ErrFavoriteNotFound)
}

func TestSingleTopAdmin(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Admins.Create(ctx, &models.Admin{Email: "top@example.com", UniqueID: "t-1", IsTopAdmin: true}))
	err := store.Admins.Create(ctx, &models.Admin{Email: "top2@example.com", UniqueID: "t-2", IsTopAdmin: true})
	assert.ErrorIs(t, err, repositories.ErrTopAdminExists)

	require.NoError(t, store.Admins.Create(ctx, &models.Admin{Email: "ops@example.com", UniqueID: "a-1"}))

	admins, err := store.Admins.ListNonTop(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "a-1", admins[0].UniqueID)

	assert.ErrorIs(t, store.Admins.Delete(ctx, "t-1"), repositories.ErrAdminNotFound)
	require.NoError(t, store.Admins.Delete(ctx, "a-1"))
}

func TestBookingIDs(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	b := &models.CarBooking{Username: "sam", CarName: "Audi A4", Status: models.BookingStatusPending, CreatedAt: now, UpdatedAt: now, CurrentTime: now}
	require.NoError(t, store.Bookings.Create(ctx, b))
	require.Len(t, b.ID, 24)

	updated, err := store.Bookings.UpdateStatus(ctx, b.ID, models.BookingStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusBooked, updated.Status)

	_, err = store.Bookings.FindByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, repositories.ErrBookingNotFound)
}
