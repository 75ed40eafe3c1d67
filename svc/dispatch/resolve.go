package dispatch

import (
	"fmt"

	"github.com/dmitrymomot/corpsite/pkg/mailer"
)

// Factory builds transports from complete profiles.
type Factory struct {
	API  func(mailer.PostmarkConfig) (mailer.Transport, error)
	SMTP func(mailer.SMTPConfig) (mailer.Transport, error)
}

// DefaultFactory builds the Postmark and gomail transports.
func DefaultFactory() Factory {
	return Factory{
		API: func(cfg mailer.PostmarkConfig) (mailer.Transport, error) {
			return mailer.NewPostmarkTransport(cfg)
		},
		SMTP: func(cfg mailer.SMTPConfig) (mailer.Transport, error) {
			return mailer.NewSMTPTransport(cfg)
		},
	}
}

// Resolve selects the transport for cfg. An API key always wins, even when
// SMTP is also configured; there is no fallback if the API later fails.
func Resolve(cfg Config, f Factory) (mailer.Transport, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: sender email is not set", ErrNotConfigured)
	}

	if api, ok := cfg.APIProfile(); ok {
		t, err := f.API(api)
		if err != nil {
			return nil, fmt.Errorf("dispatch: build api transport: %w", err)
		}
		return t, nil
	}

	smtp, ok, err := cfg.SMTPProfile()
	if err != nil {
		return nil, err
	}
	if ok {
		t, err := f.SMTP(smtp)
		if err != nil {
			return nil, fmt.Errorf("dispatch: build smtp transport: %w", err)
		}
		return t, nil
	}

	return nil, fmt.Errorf("%w: neither api key nor smtp credentials are set", ErrNotConfigured)
}
