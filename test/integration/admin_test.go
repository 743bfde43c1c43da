package integration_test

import (
	"net/http"
	"testing"

	"cars2customer_backend/pkg/apperrors"
	"cars2customer_backend/pkg/contextkeys"
	"cars2customer_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListHidesTopAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	token, _ := helpers.LoginTopAdmin(t, ts)
	helpers.CreateAdmin(t, ts, "ops@example.com", "pw")

	resp, body := ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var admins []struct {
		Email      string `json:"email"`
		IsTopAdmin bool   `json:"isTopAdmin"`
		Password   string `json:"password"`
	}
	helpers.DecodeJSON(t, body, &admins)
	require.Len(t, admins, 1)
	assert.Equal(t, "ops@example.com", admins[0].Email)
	assert.False(t, admins[0].IsTopAdmin)
	assert.Empty(t, admins[0].Password)
}

func TestAdminRoutesRejectAnonymousCallers(t *testing.T) {
	ts := helpers.NewTestServer(t, true)

	resp, body := ts.SendRequest(t, http.MethodGet, "/admin/all", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(t, body))

	resp, body = ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithHeader(contextkeys.AdminIDHeader, "not-an-admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apperrors.CodeForbidden, errorCode(t, body))

	resp, body = ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithBearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidToken, errorCode(t, body))
}

func TestLegacyUniqueIDSources(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	_, topID := helpers.LoginTopAdmin(t, ts)

	resp, _ := ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithHeader(contextkeys.AdminIDHeader, topID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodGet, "/admin/all?uniqueId="+topID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := ts.SendRequest(t, http.MethodPost, "/cars", map[string]interface{}{
		"uniqueId": topID,
		"car":      map[string]string{"carId": "legacy-1", "brand": "Kia", "model": "Rio"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func TestLegacyUniqueIDRejectedWhenDisabled(t *testing.T) {
	ts := helpers.NewTestServer(t, false)
	token, topID := helpers.LoginTopAdmin(t, ts)

	resp, body := ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithHeader(contextkeys.AdminIDHeader, topID))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(t, body))

	resp, _ = ts.SendRequest(t, http.MethodGet, "/admin/all", nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTopAdminCannotBeModified(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	token, topID := helpers.LoginTopAdmin(t, ts)

	resp, body := ts.SendRequest(t, http.MethodPut, "/admin/"+topID, map[string]string{"email": "new@example.com"}, helpers.WithBearer(token))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apperrors.CodeProtectedRecord, errorCode(t, body))

	resp, body = ts.SendRequest(t, http.MethodDelete, "/admin/"+topID, nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apperrors.CodeProtectedRecord, errorCode(t, body))

	// the top admin can still log in with the original credentials
	helpers.LoginTopAdmin(t, ts)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	token, _ := helpers.LoginTopAdmin(t, ts)
	opsID := helpers.CreateAdmin(t, ts, "ops@example.com", "pw")

	resp, body := ts.SendRequest(t, http.MethodPut, "/admin/"+opsID, map[string]string{
		"email":    "ops2@example.com",
		"password": "pw2",
	}, helpers.WithBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = ts.SendRequest(t, http.MethodPost, "/admin/login", map[string]string{"email": "ops@example.com", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, sameID := helpers.LoginAdmin(t, ts, "ops2@example.com", "pw2")
	assert.Equal(t, opsID, sameID)

	resp, _ = ts.SendRequest(t, http.MethodDelete, "/admin/"+opsID, nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.SendRequest(t, http.MethodDelete, "/admin/"+opsID, nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(t, body))
}

func TestSecondTopAdminRejected(t *testing.T) {
	ts := helpers.NewTestServer(t, true)

	resp, body := ts.SendRequest(t, http.MethodPost, "/admin/register/top", map[string]string{
		"email":    "another-top@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.CodeAlreadyExists, errorCode(t, body))
}

func TestDuplicateAdminEmail(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	helpers.CreateAdmin(t, ts, "ops@example.com", "pw")

	resp, body := ts.SendRequest(t, http.MethodPost, "/admin/register", map[string]string{
		"email":    "OPS@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.CodeAlreadyExists, errorCode(t, body))
}
