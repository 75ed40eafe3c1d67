package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/corpsite/pkg/binder"
	"github.com/dmitrymomot/corpsite/pkg/logger"
)

// ErrorHandlerConfig sets the user facing messages of the JSON error handler.
type ErrorHandlerConfig struct {
	// InvalidRequest is used for undecodable bodies (400, 413, 415).
	InvalidRequest string
	// InternalError is used for errors that are not an *APIError (500).
	InternalError string
	// HideInternalDetails drops err.Error() from 500 responses.
	HideInternalDetails bool
}

func (c ErrorHandlerConfig) withDefaults() ErrorHandlerConfig {
	if c.InvalidRequest == "" {
		c.InvalidRequest = "Invalid request"
	}
	if c.InternalError == "" {
		c.InternalError = "Internal server error"
	}
	return c
}

// NewErrorHandler returns an ErrorHandler that renders every failure as
// {"error", "details"?, "code"?} and logs it, 4xx at WARN and 5xx at ERROR.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()

	return func(ctx Context, err error) {
		apiErr := classify(err, cfg)
		status := statusOrDefault(apiErr.Status)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request failed",
			logger.Component("http"),
			logger.Error(err),
			logger.StatusCode(status),
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
		)

		w := ctx.ResponseWriter()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if encErr := json.NewEncoder(w).Encode(apiErr.body()); encErr != nil {
			log.LogAttrs(ctx, slog.LevelError, "failed to write error response",
				logger.Component("http"),
				logger.Error(encErr),
			)
		}
	}
}

func classify(err error, cfg ErrorHandlerConfig) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return NewAPIError(http.StatusUnsupportedMediaType, cfg.InvalidRequest, WithDetails("application/json"))
	case errors.Is(err, binder.ErrBodyTooLarge):
		return NewAPIError(http.StatusRequestEntityTooLarge, cfg.InvalidRequest)
	case errors.Is(err, binder.ErrFailedToParseJSON):
		return NewAPIError(http.StatusBadRequest, cfg.InvalidRequest)
	}

	internal := NewAPIError(http.StatusInternalServerError, cfg.InternalError)
	if !cfg.HideInternalDetails && err != nil {
		internal.Details = err.Error()
	}
	return internal
}
