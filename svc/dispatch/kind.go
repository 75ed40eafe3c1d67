package dispatch

import (
	"errors"

	"github.com/dmitrymomot/corpsite/pkg/config"
	"github.com/dmitrymomot/corpsite/pkg/mailer"
	"github.com/dmitrymomot/corpsite/pkg/validator"
)

// ErrorKind groups dispatch failures by how callers should report them.
type ErrorKind int

const (
	KindUnclassified ErrorKind = iota
	KindMissingField
	KindConfiguration
	KindProvider
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindConfiguration:
		return "configuration"
	case KindProvider:
		return "provider"
	default:
		return "unclassified"
	}
}

// KindOf classifies an error returned by Dispatcher.Send.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnclassified
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	case errors.Is(err, ErrNotConfigured), errors.Is(err, mailer.ErrInvalidConfig),
		errors.Is(err, config.ErrParsingConfig):
		return KindConfiguration
	}
	if _, ok := mailer.AsProviderError(err); ok {
		return KindProvider
	}
	return KindUnclassified
}

// MissingFields returns the empty request fields in to, subject, message order.
func MissingFields(err error) []string {
	return validator.ExtractValidationErrors(err).Fields()
}
