package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/corpsite/pkg/mailer"
)

type fakeSMTPConn struct {
	from    string
	to      []string
	raw     bytes.Buffer
	sendErr error
	closed  bool
}

func (c *fakeSMTPConn) Send(from string, to []string, msg io.WriterTo) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.from = from
	c.to = to
	_, err := msg.WriteTo(&c.raw)
	return err
}

func (c *fakeSMTPConn) Close() error {
	c.closed = true
	return nil
}

func smtpConfig() mailer.SMTPConfig {
	return mailer.SMTPConfig{Host: "smtp.example.com", Login: "login", Password: "secret"}
}

func TestNewSMTPTransport(t *testing.T) {
	t.Parallel()

	t.Run("requires host", func(t *testing.T) {
		t.Parallel()
		_, err := mailer.NewSMTPTransport(mailer.SMTPConfig{Login: "l", Password: "p"})
		assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()
		_, err := mailer.NewSMTPTransport(mailer.SMTPConfig{Host: "smtp.example.com", Login: "l"})
		assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		tr, err := mailer.NewSMTPTransport(smtpConfig())
		require.NoError(t, err)
		assert.Equal(t, mailer.KindSMTP, tr.Kind())
	})
}

func TestSMTPTransport_Send(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("submits message and returns generated message id", func(t *testing.T) {
		t.Parallel()
		conn := &fakeSMTPConn{}
		tr, err := mailer.NewSMTPTransport(smtpConfig(), mailer.WithSMTPDialFunc(func() (gomail.SendCloser, error) {
			return conn, nil
		}))
		require.NoError(t, err)

		receipt, err := tr.Send(ctx, testMessage())
		require.NoError(t, err)

		assert.Regexp(t, `^<[0-9a-f-]{36}@example\.com>$`, receipt.MessageID)
		assert.Equal(t, "noreply@example.com", conn.from)
		assert.Equal(t, []string{"a@b.com"}, conn.to)
		assert.True(t, conn.closed)

		raw := conn.raw.String()
		assert.Contains(t, raw, "Message-ID: "+receipt.MessageID)
		assert.Contains(t, raw, "Subject: Hi")
		assert.Contains(t, raw, "text/plain")
		assert.Contains(t, raw, "text/html")
	})

	t.Run("relay rejection becomes provider error", func(t *testing.T) {
		t.Parallel()
		conn := &fakeSMTPConn{sendErr: &textproto.Error{Code: 550, Msg: "mailbox unavailable"}}
		tr, err := mailer.NewSMTPTransport(smtpConfig(), mailer.WithSMTPDialFunc(func() (gomail.SendCloser, error) {
			return conn, nil
		}))
		require.NoError(t, err)

		_, err = tr.Send(ctx, testMessage())
		pe, ok := mailer.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, mailer.KindSMTP, pe.Transport)
		assert.Equal(t, 550, pe.Status)
		assert.Equal(t, "mailbox unavailable", pe.Message)
	})

	t.Run("authentication failure on dial becomes provider error", func(t *testing.T) {
		t.Parallel()
		tr, err := mailer.NewSMTPTransport(smtpConfig(), mailer.WithSMTPDialFunc(func() (gomail.SendCloser, error) {
			return nil, &textproto.Error{Code: 535, Msg: "authentication failed"}
		}))
		require.NoError(t, err)

		_, err = tr.Send(ctx, testMessage())
		pe, ok := mailer.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, 535, pe.Status)
	})

	t.Run("network failure is a delivery failure", func(t *testing.T) {
		t.Parallel()
		tr, err := mailer.NewSMTPTransport(smtpConfig(), mailer.WithSMTPDialFunc(func() (gomail.SendCloser, error) {
			return nil, errors.New("dial tcp: i/o timeout")
		}))
		require.NoError(t, err)

		_, err = tr.Send(ctx, testMessage())
		assert.ErrorIs(t, err, mailer.ErrDeliveryFailed)
		_, ok := mailer.AsProviderError(err)
		assert.False(t, ok)
	})

	t.Run("cancelled context skips dialing", func(t *testing.T) {
		t.Parallel()
		dialed := false
		tr, err := mailer.NewSMTPTransport(smtpConfig(), mailer.WithSMTPDialFunc(func() (gomail.SendCloser, error) {
			dialed = true
			return &fakeSMTPConn{}, nil
		}))
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = tr.Send(cctx, testMessage())
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, dialed)
	})
}
