package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"cars2customer_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	sent []*Email
	err  error
}

func (p *recordingProvider) Send(_ context.Context, email *Email) error {
	p.sent = append(p.sent, email)
	return p.err
}
func (p *recordingProvider) Validate() error { return nil }
func (p *recordingProvider) Close() error    { return nil }

func TestDefaultTemplates(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"otp_registration", "otp_password_reset"}, tm.TemplateNames())

	html, err := tm.Render("otp_registration", TemplateData{"Code": "482913", "ValidMinutes": 15})
	require.NoError(t, err)
	assert.Contains(t, html, "482913")
	assert.Contains(t, html, "15 minutes")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestOTPMailer(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	t.Run("registration subject", func(t *testing.T) {
		p := &recordingProvider{}
		m := NewOTPMailer(p, tm, 15)

		require.NoError(t, m.SendOTP(context.Background(), "buyer@example.com", "123456", models.OTPPurposeRegistration))
		require.Len(t, p.sent, 1)
		assert.Equal(t, []string{"buyer@example.com"}, p.sent[0].To)
		assert.Equal(t, "Your OTP Code - cars2customer", p.sent[0].Subject)
		assert.Contains(t, p.sent[0].Body, "123456")
		assert.Contains(t, p.sent[0].HTMLBody, "123456")
	})

	t.Run("reset subject", func(t *testing.T) {
		p := &recordingProvider{}
		m := NewOTPMailer(p, tm, 15)

		require.NoError(t, m.SendOTP(context.Background(), "buyer@example.com", "654321", models.OTPPurposePasswordReset))
		assert.Equal(t, "Password Reset OTP - cars2customer", p.sent[0].Subject)
	})

	t.Run("provider error surfaces", func(t *testing.T) {
		p := &recordingProvider{err: errors.New("smtp down")}
		m := NewOTPMailer(p, tm, 15)
		assert.Error(t, m.SendOTP(context.Background(), "buyer@example.com", "654321", models.OTPPurposePasswordReset))
	})

	t.Run("unknown purpose", func(t *testing.T) {
		m := NewOTPMailer(&recordingProvider{}, tm, 15)
		assert.Error(t, m.SendOTP(context.Background(), "buyer@example.com", "1", models.OTPPurpose("other")))
	})
}

func TestSMTPProviderValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, NewSMTPProvider(cfg).Validate(), "sender required")

	cfg.FromEmail = "noreply@cars2customer.com"
	assert.NoError(t, NewSMTPProvider(cfg).Validate())

	cfg.Port = 0
	assert.Error(t, NewSMTPProvider(cfg).Validate())
}

func TestSMTPProviderHonoursContext(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation and never answers.
	cfg := &SMTPConfig{Host: "192.0.2.1", Port: 2525, FromEmail: "noreply@cars2customer.com"}
	p := NewSMTPProvider(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Send(ctx, &Email{To: []string{"buyer@example.com"}, Subject: "s", Body: "b"})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
