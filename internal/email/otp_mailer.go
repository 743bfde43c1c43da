package email

import (
	"context"
	"fmt"

	"cars2customer_backend/internal/models"
)

type otpMessage struct {
	subject  string
	template string
	text     string
}

var otpMessages = map[models.OTPPurpose]otpMessage{
	models.OTPPurposeRegistration: {
		subject:  "Your OTP Code - cars2customer",
		template: "otp_registration",
		text:     "Your OTP code is %s. Please use this code to complete your verification process. It will expire in %d minutes.",
	},
	models.OTPPurposePasswordReset: {
		subject:  "Password Reset OTP - cars2customer",
		template: "otp_password_reset",
		text:     "Your OTP code is %s. Please use this code to complete the password reset process. It will expire in %d minutes.",
	},
}

// OTPMailer renders and sends one-time codes.
type OTPMailer struct {
	provider     Provider
	renderer     TemplateRenderer
	validMinutes int
}

func NewOTPMailer(provider Provider, renderer TemplateRenderer, validMinutes int) *OTPMailer {
	return &OTPMailer{provider: provider, renderer: renderer, validMinutes: validMinutes}
}

func (m *OTPMailer) SendOTP(ctx context.Context, to, code string, purpose models.OTPPurpose) error {
	msg, ok := otpMessages[purpose]
	if !ok {
		return fmt.Errorf("unknown otp purpose %q", purpose)
	}

	html, err := m.renderer.Render(msg.template, TemplateData{
		"Code":         code,
		"ValidMinutes": m.validMinutes,
	})
	if err != nil {
		return err
	}

	return m.provider.Send(ctx, &Email{
		To:       []string{to},
		Subject:  msg.subject,
		Body:     fmt.Sprintf(msg.text, code, m.validMinutes),
		HTMLBody: html,
	})
}
