package dispatch

import "errors"

var (
	// ErrMissingField means to, subject or message is empty. The failing
	// fields are available through MissingFields.
	ErrMissingField = errors.New("dispatch: missing required field")
	// ErrNotConfigured means the sender email is unset or neither the API
	// nor the SMTP profile is complete.
	ErrNotConfigured = errors.New("dispatch: mail transport not configured")
)
