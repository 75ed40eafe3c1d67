package site

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/corpsite/handler"
	"github.com/dmitrymomot/corpsite/pkg/clientip"
	"github.com/dmitrymomot/corpsite/pkg/environment"
	"github.com/dmitrymomot/corpsite/pkg/httpserver"
	"github.com/dmitrymomot/corpsite/pkg/metrics"
	"github.com/dmitrymomot/corpsite/pkg/requestid"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the site router. Access and Mail are mounted only
// when provided.
type RouterOptions struct {
	Access Mountable
	Mail   Mountable

	Env    environment.Environment
	Logger *slog.Logger
	// Checks run on GET /health/ready.
	Checks []httpserver.Check
	// ClientIPHeaders overrides clientip.DefaultHeaders.
	ClientIPHeaders []string
}

// Router builds the HTTP surface of the site.
//
//	r := site.Router(site.RouterOptions{
//	    Access: site.NewAccessService(gate, errHandler, site.WithLimiter(limiter)),
//	    Mail:   site.NewMailService(dispatcher, errHandler),
//	    Env:    env,
//	})
func Router(opts RouterOptions) chi.Router {
	env := opts.Env
	if env == "" {
		env = environment.Development
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(opts.ClientIPHeaders...),
		environment.Middleware(env),
	)

	if opts.Access != nil {
		r.Mount("/verify-password", opts.Access.Handle())
	}
	if opts.Mail != nil {
		r.Mount("/send-email", opts.Mail.Handle())
	}

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(opts.Logger, opts.Checks...))
	r.Handle("/metrics", metrics.MetricsHandler())

	return r
}

// NewErrorHandler returns the JSON error handler with the site's messages.
func NewErrorHandler(log *slog.Logger) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		InvalidRequest: msgInvalidRequest,
		InternalError:  msgInternalError,
	})
}

// writeError renders err through h outside of handler.Wrap, e.g. from a
// middleware.
func writeError(h handler.ErrorHandler[handler.Context], w http.ResponseWriter, r *http.Request, err error) {
	h(handler.NewContext(w, r), err)
}
