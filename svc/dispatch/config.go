package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/corpsite/pkg/config"
	"github.com/dmitrymomot/corpsite/pkg/mailer"
)

// Config holds the sender identity and both transport profiles. It is read
// per request, so credentials can be rotated without a restart. SMTPPort
// stays a string so a bad value only matters when SMTP is selected.
type Config struct {
	SenderEmail  string `env:"MAIL_SENDER_EMAIL"`
	SenderName   string `env:"MAIL_SENDER_NAME"`
	APIKey       string `env:"MAIL_API_KEY"`
	SMTPHost     string `env:"MAIL_SMTP_HOST"`
	SMTPPort     string `env:"MAIL_SMTP_PORT"`
	SMTPLogin    string `env:"MAIL_SMTP_LOGIN"`
	SMTPPassword string `env:"MAIL_SMTP_PASSWORD"`
}

// Sender returns the From address for outgoing messages.
func (c Config) Sender() mailer.Address {
	return mailer.Address{Email: c.SenderEmail, Name: c.SenderName}
}

// APIProfile returns the API profile and whether it is complete.
func (c Config) APIProfile() (mailer.PostmarkConfig, bool) {
	return mailer.PostmarkConfig{ServerToken: c.APIKey}, c.SenderEmail != "" && c.APIKey != ""
}

// SMTPProfile returns the SMTP profile and whether it is complete. An empty
// port means mailer.DefaultSMTPPort; a malformed one is an ErrNotConfigured
// error.
func (c Config) SMTPProfile() (mailer.SMTPConfig, bool, error) {
	cfg := mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     mailer.DefaultSMTPPort,
		Login:    c.SMTPLogin,
		Password: c.SMTPPassword,
	}
	ok := c.SenderEmail != "" && c.SMTPHost != "" && c.SMTPLogin != "" && c.SMTPPassword != ""
	if !ok {
		return cfg, false, nil
	}

	if p := strings.TrimSpace(c.SMTPPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, false, fmt.Errorf("%w: invalid smtp port %q", ErrNotConfigured, c.SMTPPort)
		}
		cfg.Port = port
	}
	return cfg, true, nil
}

// Source returns the current Config.
type Source func(ctx context.Context) (Config, error)

// EnvSource reads Config from the environment on every call.
func EnvSource() Source {
	return func(context.Context) (Config, error) {
		return config.Read[Config]()
	}
}

// StaticSource always returns cfg.
func StaticSource(cfg Config) Source {
	return func(context.Context) (Config, error) {
		return cfg, nil
	}
}
