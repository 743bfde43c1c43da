package services

import (
	"context"
	"strings"
	"testing"

	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 40 runes, 80 bytes: within a rune limit of 72 but over bcrypt's byte limit.
var multibytePassword = strings.Repeat("é", 40)

func requireValidationFailure(t *testing.T, err error, field string) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Details, field)
}

func TestRegisterRejectsPasswordOverByteLimit(t *testing.T) {
	f := newAuthFixture(t, AuthServiceConfig{})
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, "a@x.com"))
	code := f.mailer.last(t).code

	_, err := f.svc.Register(ctx, &dto.RegisterRequest{Email: "a@x.com", Password: multibytePassword, OTP: code})
	requireValidationFailure(t, err, "password")

	// the code was not consumed
	assert.False(t, f.user(t, "a@x.com").IsVerified)
	_, err = f.svc.Register(ctx, &dto.RegisterRequest{Email: "a@x.com", Password: "pw", OTP: code})
	assert.NoError(t, err)
}

func TestResetPasswordRejectsPasswordOverByteLimit(t *testing.T) {
	f := newAuthFixture(t, AuthServiceConfig{})
	ctx := context.Background()
	registerUser(t, f, "a@x.com", "pw")
	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@x.com"))

	err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Email:       "a@x.com",
		OTP:         f.mailer.last(t).code,
		NewPassword: multibytePassword,
	})
	requireValidationFailure(t, err, "newPassword")
}

func TestAdminPasswordOverByteLimit(t *testing.T) {
	svc, _ := newAdminFixture(t, true)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.AdminCredentials{Email: "ops@x.com", Password: multibytePassword})
	requireValidationFailure(t, err, "password")

	admin, err := svc.Register(ctx, creds("ops@x.com"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin.UniqueID, &dto.UpdateAdminRequest{Password: strPtr(multibytePassword)})
	requireValidationFailure(t, err, "password")
}
