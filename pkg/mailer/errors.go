package mailer

import "errors"

var (
	ErrDeliveryFailed = errors.New("mailer.errors.delivery_failed")
	ErrInvalidConfig  = errors.New("mailer.errors.invalid_config")
	ErrInvalidMessage = errors.New("mailer.errors.invalid_message")
)
