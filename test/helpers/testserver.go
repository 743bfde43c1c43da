package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cars2customer_backend/internal/app"
	"cars2customer_backend/internal/config"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/repositories/memory"
	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	TopAdminEmail    = "top@cars2customer.test"
	TopAdminPassword = "top-secret"
)

// SentOTP is one code captured by CapturingMailer.
type SentOTP struct {
	To      string
	Code    string
	Purpose models.OTPPurpose
}

// CapturingMailer records every code instead of mailing it.
type CapturingMailer struct {
	mu   sync.Mutex
	sent []SentOTP
}

func (m *CapturingMailer) SendOTP(_ context.Context, to, code string, purpose models.OTPPurpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentOTP{To: to, Code: code, Purpose: purpose})
	return nil
}

// LastCode returns the most recent code mailed to addr.
func (m *CapturingMailer) LastCode(t *testing.T, addr string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == addr {
			return m.sent[i].Code
		}
	}
	t.Fatalf("no OTP was sent to %s", addr)
	return ""
}

func (m *CapturingMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// TestServer runs the full router against the in-memory store.
type TestServer struct {
	Server   *httptest.Server
	Store    *repositories.Store
	Mailer   *CapturingMailer
	Services *services.ServiceContainer
	Config   *config.Config
}

// NewTestServer starts a server with a seeded top admin. legacy toggles
// acceptance of a bare admin uniqueId.
func NewTestServer(t *testing.T, legacy bool) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Store.Driver = config.StoreMemory
	cfg.Auth.BcryptCost = 4
	cfg.Auth.JWTSecret = "integration-test-secret"
	cfg.Auth.AllowLegacyUniqueID = legacy
	cfg.Email.SendTimeout = 2 * time.Second
	cfg.Files.MaxSize = 1 << 20

	files, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: t.TempDir(),
		BaseURL:  "/files",
	})
	require.NoError(t, err)

	deps := &app.Dependencies{
		Store:   memory.NewStore(),
		Locker:  lock.NewLocal(),
		Mailer:  &CapturingMailer{},
		Storage: files,
	}

	router, svc := app.SetupRouter(cfg, deps)
	_, err = svc.AdminService.SeedTopAdmin(context.Background(), TopAdminEmail, TopAdminPassword)
	require.NoError(t, err)

	ts := &TestServer{
		Server:   httptest.NewServer(router),
		Store:    deps.Store,
		Mailer:   deps.Mailer.(*CapturingMailer),
		Services: svc,
		Config:   cfg,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
}

// RequestOption adjusts an outgoing request.
type RequestOption func(*http.Request)

func WithBearer(token string) RequestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body interface{}, opts ...RequestOption) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	return ts.do(t, req)
}

// UploadFile posts a single multipart file part named field.
func (ts *TestServer) UploadFile(t *testing.T, path, field, filename string, content []byte, fields map[string]string, opts ...RequestOption) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, opt := range opts {
		opt(req)
	}
	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// DecodeJSON unmarshals a response body into out.
func DecodeJSON(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out), "body: %s", string(data))
}
