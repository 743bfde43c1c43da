package app

import (
	"context"

	"cars2customer_backend/internal/email"
	"cars2customer_backend/internal/logger"
)

// MockEmailProvider is used for tests and local development.
// It logs messages instead of sending them.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(ctx context.Context, msg *email.Email) error {
	logger.CtxInfo(ctx, "Mock email sent", "to", msg.To, "subject", msg.Subject)
	logger.CtxDebug(ctx, "Mock email body", "body", msg.Body)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
