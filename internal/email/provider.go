package email

import "context"

// Provider delivers messages.
type Provider interface {
	// Send blocks until the message is accepted or ctx is done.
	Send(ctx context.Context, email *Email) error
	Validate() error
	Close() error
}

// TemplateRenderer renders a named email template.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
