package mailer

import (
	"errors"
	"fmt"
)

// ProviderError is returned when the remote side (provider API or SMTP relay)
// explicitly rejected a message. Status is the HTTP status or SMTP reply code,
// Code is the provider specific error code when one is reported.
type ProviderError struct {
	Transport Kind
	Status    int
	Code      int
	Message   string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s provider error %d (code %d): %s", e.Transport, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s provider error %d: %s", e.Transport, e.Status, e.Message)
}

// Unwrap lets errors.Is(err, ErrDeliveryFailed) match provider rejections.
func (e *ProviderError) Unwrap() error {
	return ErrDeliveryFailed
}

// AsProviderError extracts a ProviderError from the chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
