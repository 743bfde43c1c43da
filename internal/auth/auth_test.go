package auth

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, otpMin)
		assert.LessOrEqual(t, n, otpMax)
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, h.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, h.CheckPasswordHash("wrong", hash))
	assert.False(t, h.CheckPasswordHash("s3cret-pass", ""))

	_, err = h.HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	other, err := h.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salted hashes differ")
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}

func TestTokenManager(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("test-secret", "cars2customer", time.Hour)
	m.now = func() time.Time { return now }

	token, expiresAt, err := m.GenerateAdminToken("admin-1", "top_admin")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := m.ParseAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "top_admin", claims.Role)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", "cars2customer", time.Hour)
		other.now = m.now
		_, err := other.ParseAdminToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager("test-secret", "cars2customer", time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.ParseAdminToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseAdminToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
