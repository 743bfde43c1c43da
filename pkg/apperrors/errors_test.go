package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	withDetails := ErrInvalidOrExpiredOTP.WithDetails("x")

	assert.Nil(t, ErrInvalidOrExpiredOTP.Details)
	assert.Equal(t, "x", withDetails.Details)
	assert.True(t, errors.Is(withDetails, ErrInvalidOrExpiredOTP))
}

func TestIsMatchesWrappedCopies(t *testing.T) {
	err := fmt.Errorf("register: %w", ErrAlreadyRegistered.WithError(errors.New("dup")))

	assert.True(t, Is(err, ErrAlreadyRegistered))
	assert.False(t, Is(err, ErrInvalidOrExpiredOTP))
}

func TestHandleErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, ErrProtectedRecord)

	require.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(CodeProtectedRecord), body["error"]["code"])
	assert.Equal(t, "admin", body["error"]["domain"])
}

func TestHandleErrorHidesUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetDebug(false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, errors.New("connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), string(CodeInternalError))
}
