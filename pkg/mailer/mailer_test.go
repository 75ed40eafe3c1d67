package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/corpsite/pkg/mailer"
)

func TestAddress(t *testing.T) {
	t.Parallel()

	t.Run("falls back to default display name", func(t *testing.T) {
		t.Parallel()
		a := mailer.Address{Email: "noreply@example.com"}
		assert.Equal(t, mailer.DefaultSenderName, a.DisplayName())
		assert.Equal(t, `"Sistema Corporativo" <noreply@example.com>`, a.String())
	})

	t.Run("uses configured name", func(t *testing.T) {
		t.Parallel()
		a := mailer.Address{Email: "team@example.com", Name: "Acme"}
		assert.Equal(t, "Acme", a.DisplayName())
		assert.Equal(t, `"Acme" <team@example.com>`, a.String())
	})
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := mailer.Message{
		From:    mailer.Address{Email: "noreply@example.com"},
		To:      "user@example.com",
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	}

	tests := []struct {
		name    string
		mutate  func(*mailer.Message)
		wantErr bool
	}{
		{name: "valid", mutate: func(*mailer.Message) {}},
		{name: "recipient is not format checked", mutate: func(m *mailer.Message) { m.To = "not-an-email" }},
		{name: "text only", mutate: func(m *mailer.Message) { m.HTML = "" }},
		{name: "missing sender", mutate: func(m *mailer.Message) { m.From.Email = "" }, wantErr: true},
		{name: "missing recipient", mutate: func(m *mailer.Message) { m.To = "" }, wantErr: true},
		{name: "missing subject", mutate: func(m *mailer.Message) { m.Subject = "" }, wantErr: true},
		{name: "missing body", mutate: func(m *mailer.Message) { m.HTML, m.Text = "", "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := valid
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, mailer.ErrInvalidMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	err := &mailer.ProviderError{Transport: mailer.KindAPI, Status: 422, Code: 300, Message: "Invalid 'To' address"}
	assert.ErrorIs(t, err, mailer.ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "code 300")

	pe, ok := mailer.AsProviderError(err)
	assert.True(t, ok)
	assert.Equal(t, 422, pe.Status)
}
