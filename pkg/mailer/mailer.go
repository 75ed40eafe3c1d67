package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// DefaultSenderName is used when no display name is configured for the sender.
const DefaultSenderName = "Sistema Corporativo"

// Kind identifies the mechanism a Transport uses to hand off a message.
type Kind string

const (
	// KindAPI delivers through the transactional email provider API.
	KindAPI Kind = "API"
	// KindSMTP delivers through a plain SMTP relay.
	KindSMTP Kind = "SMTP"
)

func (k Kind) String() string { return string(k) }

// Transport delivers a fully rendered message.
// Implementations make exactly one delivery attempt per call.
type Transport interface {
	Kind() Kind
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Address is a mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

// DisplayName returns the configured name or DefaultSenderName.
func (a Address) DisplayName() string {
	if strings.TrimSpace(a.Name) == "" {
		return DefaultSenderName
	}
	return a.Name
}

// String formats the address as an RFC 5322 mailbox, e.g. "Sistema Corporativo" <noreply@example.com>.
func (a Address) String() string {
	return (&mail.Address{Name: a.DisplayName(), Address: a.Email}).String()
}

// Message is the rendered email handed to a Transport.
type Message struct {
	From    Address
	To      string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the fields every transport needs. The recipient is not
// format-checked: providers decide what they accept.
func (m Message) Validate() error {
	switch {
	case m.From.Email == "":
		return fmt.Errorf("%w: sender email is required", ErrInvalidMessage)
	case m.To == "":
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	case m.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case m.HTML == "" && m.Text == "":
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// Receipt is what a transport reports back after a successful hand-off.
// MessageID is empty when the transport has no identifier to report.
type Receipt struct {
	MessageID string
}
