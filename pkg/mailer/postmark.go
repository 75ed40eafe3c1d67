package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkAPI is the subset of *postmark.Client used by PostmarkTransport.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkConfig is the API transport profile.
type PostmarkConfig struct {
	ServerToken string
	// BaseURL overrides the API endpoint; empty means https://api.postmarkapp.com.
	BaseURL string
}

// PostmarkTransport delivers messages through Postmark's transactional API.
type PostmarkTransport struct {
	client PostmarkAPI
}

// PostmarkOption configures a PostmarkTransport.
type PostmarkOption func(*PostmarkTransport)

// WithPostmarkClient replaces the underlying API client.
func WithPostmarkClient(c PostmarkAPI) PostmarkOption {
	return func(t *PostmarkTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// NewPostmarkTransport creates the API transport.
// Only the server token is needed to send; account level operations are not used.
func NewPostmarkTransport(cfg PostmarkConfig, opts ...PostmarkOption) (*PostmarkTransport, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.ServerToken, "")
	if cfg.BaseURL != "" {
		client.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	t := &PostmarkTransport{client: client}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *PostmarkTransport) Kind() Kind { return KindAPI }

// Send hands the message to Postmark. Rejections answered by the API arrive
// as a postmark.APIError and are reported as a ProviderError.
func (t *PostmarkTransport) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}

	resp, err := t.client.SendEmail(ctx, postmark.Email{
		From:     msg.From.String(),
		To:       msg.To,
		Subject:  msg.Subject,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})

	var apiErr postmark.APIError
	switch {
	case errors.As(err, &apiErr):
		return Receipt{}, postmarkRejection(apiErr.ErrorCode, apiErr.Message)
	case resp.ErrorCode > 0:
		// 200 with a non-zero code; the client wraps it in a plain error.
		return Receipt{}, postmarkRejection(resp.ErrorCode, resp.Message)
	case err != nil:
		return Receipt{}, errors.Join(ErrDeliveryFailed, err)
	}

	return Receipt{MessageID: resp.MessageID}, nil
}

// postmarkTokenError is the error code Postmark sends with 401 for a bad or
// missing server token.
const postmarkTokenError = 10

// postmarkRejection builds the ProviderError for an API error code. The
// client does not expose the HTTP status, so it is derived from the code:
// token errors are answered with 401, every other rejection with 422.
func postmarkRejection(code int64, message string) *ProviderError {
	status := http.StatusUnprocessableEntity
	if code == postmarkTokenError {
		status = http.StatusUnauthorized
	}
	return &ProviderError{
		Transport: KindAPI,
		Status:    status,
		Code:      int(code),
		Message:   message,
	}
}
