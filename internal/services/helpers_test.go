package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/repositories/memory"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type sentOTP struct {
	to      string
	code    string
	purpose models.OTPPurpose
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentOTP
	err   error
	delay time.Duration
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, code string, purpose models.OTPPurpose) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentOTP{to: to, code: code, purpose: purpose})
	return nil
}

func (m *fakeMailer) all() []sentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentOTP(nil), m.sent...)
}

func (m *fakeMailer) last(t *testing.T) sentOTP {
	t.Helper()
	sent := m.all()
	require.NotEmpty(t, sent, "no OTP mailed")
	return sent[len(sent)-1]
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	store  *repositories.Store
	svc    AuthService
	mailer *fakeMailer
	clock  *fakeClock
}

func newAuthFixture(t *testing.T, cfg AuthServiceConfig) *authFixture {
	t.Helper()

	f := &authFixture{
		store:  memory.NewStore(),
		mailer: &fakeMailer{},
		clock:  newFakeClock(),
	}
	cfg.Now = f.clock.Now
	f.svc = NewAuthService(f.store.Users, auth.NewHasher(bcrypt.MinCost), lock.NewLocal(), f.mailer, cfg)
	return f
}

func (f *authFixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.store.Users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}
