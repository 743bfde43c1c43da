package helpers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoginTopAdmin returns a bearer token and uniqueId for the seeded top admin.
func LoginTopAdmin(t *testing.T, ts *TestServer) (token, uniqueID string) {
	t.Helper()
	return LoginAdmin(t, ts, TopAdminEmail, TopAdminPassword)
}

func LoginAdmin(t *testing.T, ts *TestServer, email, password string) (token, uniqueID string) {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		UniqueID string `json:"uniqueId"`
		Token    string `json:"token"`
	}
	DecodeJSON(t, body, &out)
	return out.Token, out.UniqueID
}

// CreateAdmin registers a regular admin and returns its uniqueId.
func CreateAdmin(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/admin/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		UniqueID string `json:"uniqueId"`
	}
	DecodeJSON(t, body, &out)
	return out.UniqueID
}

// RegisterUser runs the OTP flow and returns the verified user's uniqueId.
func RegisterUser(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/user/request-otp", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = ts.SendRequest(t, http.MethodPost, "/user/register", map[string]string{
		"email":    email,
		"password": password,
		"otp":      ts.Mailer.LastCode(t, email),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		UniqueID string `json:"uniqueId"`
	}
	DecodeJSON(t, body, &out)
	return out.UniqueID
}

// CreateCar adds a listing through the API as the top admin.
func CreateCar(t *testing.T, ts *TestServer, token, carID, brand, model string) {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/cars", map[string]interface{}{
		"car": map[string]interface{}{
			"carId": carID,
			"brand": brand,
			"model": model,
			"year":  "2021",
			"price": "25000",
		},
	}, WithBearer(token))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}
