package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "cars/car-1/a.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg"))

	ok, err := s.Exists(ctx, "cars/car-1/a.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Get(ctx, "cars/car-1/a.jpg")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg-bytes", string(body))

	assert.Equal(t, "/files/cars/car-1/a.jpg", s.GetURL("cars/car-1/a.jpg"))

	require.NoError(t, s.Delete(ctx, "cars/car-1/a.jpg"))
	_, err = s.Get(ctx, "cars/car-1/a.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageStaysInBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base, BaseURL: "https://cdn.example.com/"})
	require.NoError(t, err)

	full, err := s.resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, base))

	_, err = s.Get(context.Background(), "/")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.Equal(t, "https://cdn.example.com/x.png", s.GetURL("x.png"))
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(Config{Type: "cloudflare_r2"})
	assert.Error(t, err, "endpoint required")
}

func TestCarImageKey(t *testing.T) {
	key := CarImageKey("bmw x5/2021", ".jpg")
	assert.True(t, strings.HasPrefix(key, "cars/bmw_x5_2021/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.NotEqual(t, key, CarImageKey("bmw x5/2021", ".jpg"))

	assert.True(t, strings.HasPrefix(CarImageKey("c-1_a", ".png"), "cars/c-1_a/"))
}
