package integration_test

import (
	"net/http"
	"testing"

	"cars2customer_backend/pkg/apperrors"
	"cars2customer_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingBody struct {
	ID      string `json:"_id"`
	CarName string `json:"carName"`
	Status  string `json:"status"`
}

func createBooking(t *testing.T, ts *helpers.TestServer, carName string) bookingBody {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/cars/bookings", map[string]string{
		"username":    "Aigerim",
		"phoneNumber": "+77010000000",
		"contactId":   "aigerim@example.com",
		"carName":     carName,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var booking bookingBody
	helpers.DecodeJSON(t, body, &booking)
	return booking
}

func TestBookingLifecycle(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	token, _ := helpers.LoginTopAdmin(t, ts)

	first := createBooking(t, ts, "Toyota Camry")
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "pending", first.Status)
	second := createBooking(t, ts, "BMW X5")

	resp, body := ts.SendRequest(t, http.MethodGet, "/carsBooked/bookings", nil, helpers.WithBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []bookingBody
	helpers.DecodeJSON(t, body, &all)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	resp, body = ts.SendRequest(t, http.MethodPut, "/carsBooked/bookings/"+first.ID, map[string]string{"status": "booked"}, helpers.WithBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = ts.SendRequest(t, http.MethodGet, "/cars/bookings/"+first.ID, nil, helpers.WithBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got bookingBody
	helpers.DecodeJSON(t, body, &got)
	assert.Equal(t, "booked", got.Status)

	resp, _ = ts.SendRequest(t, http.MethodPut, "/carsBooked/bookings/"+first.ID, map[string]string{"status": "shipped"}, helpers.WithBearer(token))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodDelete, "/carsBooked/bookings/"+first.ID, nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.SendRequest(t, http.MethodGet, "/cars/bookings/"+first.ID, nil, helpers.WithBearer(token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(t, body))
}

func TestBookingAdminRoutesRequireAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t, true)
	booking := createBooking(t, ts, "Kia Rio")

	resp, _ := ts.SendRequest(t, http.MethodGet, "/carsBooked/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodGet, "/cars/bookings/"+booking.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.SendRequest(t, http.MethodDelete, "/carsBooked/bookings/"+booking.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateBookingValidation(t *testing.T) {
	ts := helpers.NewTestServer(t, true)

	resp, _ := ts.SendRequest(t, http.MethodPost, "/cars/bookings", map[string]string{"username": "Aigerim"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
