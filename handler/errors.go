package handler

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNilResponse = errors.New("handler: nil response")

// APIError is an error with a prepared JSON failure body.
// Message becomes "error"; Details and Code are omitted when empty.
type APIError struct {
	Status  int
	Message string
	Details string
	Code    int
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// NewAPIError builds an APIError. Opts set details, code or cause.
func NewAPIError(status int, message string, opts ...APIErrorOption) *APIError {
	e := &APIError{Status: status, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type APIErrorOption func(*APIError)

func WithDetails(details string) APIErrorOption {
	return func(e *APIError) { e.Details = details }
}

func WithCode(code int) APIErrorOption {
	return func(e *APIError) { e.Code = code }
}

// WithCause records the underlying error for logs and errors.Is.
func WithCause(err error) APIErrorOption {
	return func(e *APIError) { e.Err = err }
}

// errorBody is the wire shape of every failure.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func (e *APIError) body() errorBody {
	return errorBody{Error: e.Message, Details: e.Details, Code: e.Code}
}

func statusOrDefault(status int) int {
	if status < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return status
}
