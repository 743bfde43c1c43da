package integration_test

import (
	"encoding/json"
	"testing"

	"cars2customer_backend/pkg/apperrors"
)

// errorCode extracts error.code from an error response body.
func errorCode(t *testing.T, body []byte) apperrors.ErrorCode {
	t.Helper()

	var resp struct {
		Error struct {
			Code apperrors.ErrorCode `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("response is not an error body: %s", string(body))
	}
	return resp.Error.Code
}
