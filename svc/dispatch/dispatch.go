package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/corpsite/pkg/logger"
	"github.com/dmitrymomot/corpsite/pkg/mailer"
	"github.com/dmitrymomot/corpsite/pkg/mailer/templates"
	"github.com/dmitrymomot/corpsite/pkg/metrics"
	"github.com/dmitrymomot/corpsite/pkg/validator"
)

// Placeholder ids reported when a transport returns no message id.
const (
	PlaceholderAPI  = "API-Success"
	PlaceholderSMTP = "SMTP-Success"
)

// Request is a message submitted by a user.
type Request struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate reports every empty field. Addresses are not format-checked.
func (r Request) Validate() error {
	err := validator.Apply(
		validator.NotEmpty("to", r.To),
		validator.NotEmpty("subject", r.Subject),
		validator.NotEmpty("message", r.Message),
	)
	if err != nil {
		return errors.Join(ErrMissingField, err)
	}
	return nil
}

// Outcome describes a successful dispatch.
type Outcome struct {
	Success   bool
	Transport mailer.Kind
	MessageID string
}

// Dispatcher validates, renders and sends a Request through exactly one
// transport.
type Dispatcher struct {
	source  Source
	factory Factory
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFactory replaces how transports are built.
func WithFactory(f Factory) Option {
	return func(d *Dispatcher) {
		if f.API != nil {
			d.factory.API = f.API
		}
		if f.SMTP != nil {
			d.factory.SMTP = f.SMTP
		}
	}
}

// WithClock sets the clock used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger sets the logger for delivery records. Logs are discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a Dispatcher reading its configuration from source.
func New(source Source, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		source:  source,
		factory: DefaultFactory(),
		now:     time.Now,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send delivers req. Field validation happens before configuration is read,
// so a malformed request never touches the transports.
func (d *Dispatcher) Send(ctx context.Context, req Request) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	cfg, err := d.source(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("dispatch: read config: %w", err)
	}

	transport, err := Resolve(cfg, d.factory)
	if err != nil {
		metrics.MailDispatches.WithLabelValues("none", outcomeOf(err)).Inc()
		return Outcome{}, err
	}

	msg, err := d.render(ctx, cfg.Sender(), req)
	if err != nil {
		metrics.MailDispatches.WithLabelValues(transport.Kind().String(), metrics.OutcomeError).Inc()
		return Outcome{}, err
	}

	start := d.now()
	receipt, err := transport.Send(ctx, msg)
	elapsed := d.now().Sub(start)
	kind := transport.Kind()
	metrics.MailDispatchDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
	metrics.MailDispatches.WithLabelValues(kind.String(), outcomeOf(err)).Inc()
	if err != nil {
		return Outcome{}, err
	}

	id := receipt.MessageID
	if id == "" {
		id = placeholder(kind)
	}
	d.log.InfoContext(ctx, "email dispatched",
		logger.Component("dispatch"),
		logger.Transport(kind.String()),
		logger.MessageID(id),
		logger.Duration(elapsed),
	)
	return Outcome{Success: true, Transport: kind, MessageID: id}, nil
}

func (d *Dispatcher) render(ctx context.Context, from mailer.Address, req Request) (mailer.Message, error) {
	body := templates.Body{Message: req.Message, Year: d.now().Year()}

	html, err := templates.Render(ctx, templates.HTML(body))
	if err != nil {
		return mailer.Message{}, fmt.Errorf("dispatch: render html: %w", err)
	}
	text, err := templates.Render(ctx, templates.Text(body))
	if err != nil {
		return mailer.Message{}, fmt.Errorf("dispatch: render text: %w", err)
	}

	return mailer.Message{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		HTML:    html,
		Text:    text,
	}, nil
}

func placeholder(k mailer.Kind) string {
	if k == mailer.KindSMTP {
		return PlaceholderSMTP
	}
	return PlaceholderAPI
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case KindOf(err) == KindProvider:
		return metrics.OutcomeProviderError
	default:
		return metrics.OutcomeError
	}
}
