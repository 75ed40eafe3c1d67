package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// DefaultSMTPPort is the submission port used when none is configured.
const DefaultSMTPPort = 587

// SMTPConfig is the SMTP transport profile.
type SMTPConfig struct {
	Host     string
	Port     int
	Login    string
	Password string
}

// SMTPDialFunc opens a connection to the relay.
type SMTPDialFunc func() (gomail.SendCloser, error)

// SMTPTransport delivers messages through an SMTP relay using gomail.
type SMTPTransport struct {
	host string
	dial SMTPDialFunc
}

// SMTPOption configures an SMTPTransport.
type SMTPOption func(*SMTPTransport)

// WithSMTPDialFunc replaces how connections to the relay are opened.
func WithSMTPDialFunc(fn SMTPDialFunc) SMTPOption {
	return func(t *SMTPTransport) {
		if fn != nil {
			t.dial = fn
		}
	}
}

// NewSMTPTransport creates the SMTP transport. STARTTLS is negotiated when the
// relay offers it; port 465 switches to implicit TLS.
func NewSMTPTransport(cfg SMTPConfig, opts ...SMTPOption) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: smtp host is required", ErrInvalidConfig)
	}
	if cfg.Login == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: smtp login and password are required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultSMTPPort
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Login, cfg.Password)
	t := &SMTPTransport{
		host: cfg.Host,
		dial: dialer.Dial,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *SMTPTransport) Kind() Kind { return KindSMTP }

// Send opens a connection, submits the message and closes the connection.
// The generated Message-ID header is returned in the receipt.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, errors.Join(ErrDeliveryFailed, err)
	}

	messageID := newMessageID(msg.From.Email)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.DisplayName())
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}

	conn, err := t.dial()
	if err != nil {
		return Receipt{}, t.classify(err)
	}
	defer conn.Close()

	if err := conn.Send(msg.From.Email, []string{msg.To}, m); err != nil {
		return Receipt{}, t.classify(err)
	}

	return Receipt{MessageID: messageID}, nil
}

// classify turns SMTP reply errors into ProviderError so callers can surface
// the relay's status and text. Anything else is a plain delivery failure.
func (t *SMTPTransport) classify(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && tpErr.Code >= 400 {
		return &ProviderError{
			Transport: KindSMTP,
			Status:    tpErr.Code,
			Message:   tpErr.Msg,
		}
	}
	return errors.Join(ErrDeliveryFailed, fmt.Errorf("smtp %s: %w", t.host, err))
}

func newMessageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
