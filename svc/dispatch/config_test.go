package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corpsite/pkg/mailer"
	"github.com/dmitrymomot/corpsite/svc/dispatch"
)

func TestEnvSource(t *testing.T) {
	src := dispatch.EnvSource()

	t.Setenv("MAIL_SENDER_EMAIL", "noreply@corp.test")
	t.Setenv("MAIL_SMTP_HOST", "smtp.corp.test")
	t.Setenv("MAIL_SMTP_LOGIN", "user")
	t.Setenv("MAIL_SMTP_PASSWORD", "pass")

	cfg, err := src(context.Background())
	require.NoError(t, err)
	smtp, ok, err := cfg.SMTPProfile()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, mailer.DefaultSMTPPort, smtp.Port)
	_, ok = cfg.APIProfile()
	assert.False(t, ok)

	// changes are picked up without a restart
	t.Setenv("MAIL_API_KEY", "key")
	cfg, err = src(context.Background())
	require.NoError(t, err)
	api, ok := cfg.APIProfile()
	assert.True(t, ok)
	assert.Equal(t, "key", api.ServerToken)
}

func TestEnvSource_MalformedPort(t *testing.T) {
	t.Setenv("MAIL_SENDER_EMAIL", "noreply@corp.test")
	t.Setenv("MAIL_SMTP_HOST", "smtp.corp.test")
	t.Setenv("MAIL_SMTP_LOGIN", "user")
	t.Setenv("MAIL_SMTP_PASSWORD", "pass")
	t.Setenv("MAIL_SMTP_PORT", "smtp")

	src := dispatch.EnvSource()
	cfg, err := src(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smtp", cfg.SMTPPort)

	t.Run("smtp selected", func(t *testing.T) {
		d := dispatch.New(src)
		_, err := d.Send(context.Background(), dispatch.Request{To: "ana@corp.test", Subject: "Hola", Message: "m"})
		require.ErrorIs(t, err, dispatch.ErrNotConfigured)
		assert.Equal(t, dispatch.KindConfiguration, dispatch.KindOf(err))
	})

	t.Run("api key set", func(t *testing.T) {
		t.Setenv("MAIL_API_KEY", "tok")
		api := &mockTransport{kind: mailer.KindAPI}
		api.On("Send", mock.Anything, mock.Anything).Return(mailer.Receipt{MessageID: "pm-1"}, nil).Once()

		d := dispatch.New(src, dispatch.WithFactory(factoryFor(api, nil)))
		out, err := d.Send(context.Background(), dispatch.Request{To: "ana@corp.test", Subject: "Hola", Message: "m"})
		require.NoError(t, err)
		assert.Equal(t, mailer.KindAPI, out.Transport)
		assert.Equal(t, "pm-1", out.MessageID)
		api.AssertExpectations(t)
	})
}

func TestSMTPProfile_Port(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		port    string
		want    int
		wantErr bool
	}{
		{"empty uses default", "", mailer.DefaultSMTPPort, false},
		{"explicit", "2525", 2525, false},
		{"surrounding spaces", " 465 ", 465, false},
		{"not a number", "smtp", 0, true},
		{"zero", "0", 0, true},
		{"out of range", "65536", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := dispatch.Config{
				SenderEmail:  "noreply@corp.test",
				SMTPHost:     "smtp.corp.test",
				SMTPPort:     tt.port,
				SMTPLogin:    "user",
				SMTPPassword: "pass",
			}
			smtp, ok, err := cfg.SMTPProfile()
			if tt.wantErr {
				require.ErrorIs(t, err, dispatch.ErrNotConfigured)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, smtp.Port)
		})
	}

	t.Run("incomplete profile ignores port", func(t *testing.T) {
		t.Parallel()
		_, ok, err := dispatch.Config{SenderEmail: "noreply@corp.test", SMTPPort: "smtp"}.SMTPProfile()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
