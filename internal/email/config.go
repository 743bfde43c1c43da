package email

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseSSL    bool
}

func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:     "smtp.gmail.com",
		Port:     465,
		UseSSL:   true,
		FromName: "cars2customer",
	}
}
