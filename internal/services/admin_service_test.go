package services

import (
	"context"
	"testing"
	"time"

	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/repositories/memory"
	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAdminFixture(t *testing.T, openSignup bool) (AdminService, *repositories.Store) {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", "cars2customer", time.Hour)
	svc := NewAdminService(store.Admins, auth.NewHasher(bcrypt.MinCost), tokens, lock.NewLocal(), openSignup)
	return svc, store
}

func creds(email string) *dto.AdminCredentials {
	return &dto.AdminCredentials{Email: email, Password: "admin-pass"}
}

func strPtr(s string) *string { return &s }

func TestAdminRegisterAndLogin(t *testing.T) {
	svc, _ := newAdminFixture(t, true)
	ctx := context.Background()

	admin, err := svc.Register(ctx, creds("Ops@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "ops@x.com", admin.Email)
	assert.False(t, admin.IsTopAdmin)
	assert.NotEmpty(t, admin.UniqueID)

	_, err = svc.Register(ctx, creds("ops@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	resp, err := svc.Login(ctx, creds("ops@x.com"))
	require.NoError(t, err)
	assert.Equal(t, admin.UniqueID, resp.UniqueID)
	assert.Equal(t, AdminRole, resp.Role)
	assert.NotEmpty(t, resp.Token)

	fromToken, err := svc.AuthorizeToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.UniqueID, fromToken.UniqueID)

	_, err = svc.Login(ctx, &dto.AdminCredentials{Email: "ops@x.com", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, creds("ghost@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminRegister_Closed(t *testing.T) {
	svc, _ := newAdminFixture(t, false)

	_, err := svc.Register(context.Background(), creds("ops@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrAdminRegistrationClosed)
}

func TestAdminAuthorize(t *testing.T) {
	svc, _ := newAdminFixture(t, true)
	ctx := context.Background()
	admin, err := svc.Register(ctx, creds("ops@x.com"))
	require.NoError(t, err)

	got, err := svc.Authorize(ctx, admin.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, got.Email)

	_, err = svc.Authorize(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrMissingAdminID)
	_, err = svc.Authorize(ctx, "not-an-admin")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAdmin)
	_, err = svc.AuthorizeToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTopAdminIsProtected(t *testing.T) {
	svc, _ := newAdminFixture(t, true)
	ctx := context.Background()

	top, err := svc.RegisterTop(ctx, creds("root@x.com"))
	require.NoError(t, err)
	assert.True(t, top.IsTopAdmin)

	_, err = svc.RegisterTop(ctx, creds("root2@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrTopAdminExists)

	_, err = svc.Register(ctx, creds("ops@x.com"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, top.UniqueID, &dto.UpdateAdminRequest{Email: strPtr("evil@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrProtectedRecord)
	assert.ErrorIs(t, svc.Delete(ctx, top.UniqueID), apperrors.ErrProtectedRecord)

	still, err := svc.Authorize(ctx, top.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", still.Email)

	admins, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "ops@x.com", admins[0].Email)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	svc, _ := newAdminFixture(t, true)
	ctx := context.Background()

	a, err := svc.Register(ctx, creds("a@x.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, creds("b@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.UniqueID, &dto.UpdateAdminRequest{
		Email:    strPtr("A2@x.com"),
		Password: strPtr("fresh-pass"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a2@x.com", updated.Email)

	_, err = svc.Login(ctx, &dto.AdminCredentials{Email: "a2@x.com", Password: "fresh-pass"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, a.UniqueID, &dto.UpdateAdminRequest{Email: strPtr("b@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.Update(ctx, "missing", &dto.UpdateAdminRequest{Email: strPtr("c@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)

	require.NoError(t, svc.Delete(ctx, a.UniqueID))
	assert.ErrorIs(t, svc.Delete(ctx, a.UniqueID), apperrors.ErrAdminNotFound)
	_, err = svc.Authorize(ctx, a.UniqueID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAdmin)
}

func TestSeedTopAdmin(t *testing.T) {
	svc, store := newAdminFixture(t, false)
	ctx := context.Background()

	created, err := svc.SeedTopAdmin(ctx, "root@x.com", "root-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedTopAdmin(ctx, "other@x.com", "root-pass")
	require.NoError(t, err)
	assert.False(t, created)

	top, err := store.Admins.FindTop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", top.Email)
}
