package site

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/corpsite/handler"
	"github.com/dmitrymomot/corpsite/pkg/binder"
	"github.com/dmitrymomot/corpsite/pkg/clientip"
	"github.com/dmitrymomot/corpsite/pkg/metrics"
	"github.com/dmitrymomot/corpsite/pkg/ratelimiter"
	"github.com/dmitrymomot/corpsite/svc/accessgate"
)

// AccessService serves POST /verify-password.
type AccessService struct {
	gate         *accessgate.Service
	limiter      ratelimiter.RateLimiter
	errorHandler handler.ErrorHandler[handler.Context]
}

type AccessOption func(*AccessService)

// WithLimiter limits failed attempts per client IP. Only 401 answers consume
// tokens; a correct password never locks a client out.
func WithLimiter(l ratelimiter.RateLimiter) AccessOption {
	return func(s *AccessService) { s.limiter = l }
}

func NewAccessService(gate *accessgate.Service, errorHandler handler.ErrorHandler[handler.Context], opts ...AccessOption) *AccessService {
	s := &AccessService{gate: gate, errorHandler: errorHandler}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AccessService) Handle() http.Handler {
	r := chi.NewRouter()

	if s.limiter != nil {
		r.Use(ratelimiter.Middleware(s.limiter,
			ratelimiter.Composite(ratelimiter.Static("verify-password"), clientIPKey),
			ratelimiter.CountOnly(func(status int) bool { return status == http.StatusUnauthorized }),
			ratelimiter.WithLimitHandler(s.limited),
			ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				writeError(s.errorHandler, w, r, err)
			}),
		))
	}

	r.Post("/", handler.Wrap(s.verify,
		handler.WithBinder[handler.Context, VerifyPasswordRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, VerifyPasswordRequest](s.errorHandler),
	))

	return r
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

type VerifyPasswordResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (s *AccessService) verify(ctx handler.Context, req VerifyPasswordRequest) handler.Response {
	grant, err := s.gate.Verify(ctx, req.Password)
	switch {
	case errors.Is(err, accessgate.ErrNotConfigured):
		return handler.Error(handler.NewAPIError(http.StatusInternalServerError, msgPasswordUnset, handler.WithCause(err)))
	case errors.Is(err, accessgate.ErrUnauthorized):
		return handler.Error(handler.NewAPIError(http.StatusUnauthorized, msgWrongPassword, handler.WithCause(err)))
	case err != nil:
		return handler.Error(err)
	}

	resp := VerifyPasswordResponse{Success: true, Message: msgAccessGranted, Token: grant.Token}
	if !grant.ExpiresAt.IsZero() {
		exp := grant.ExpiresAt.UTC()
		resp.ExpiresAt = &exp
	}
	return handler.JSON(resp)
}

// limited answers 429 naming the same wait as the Retry-After header.
func (s *AccessService) limited(w http.ResponseWriter, r *http.Request, res *ratelimiter.Result) {
	metrics.AccessVerifications.WithLabelValues(metrics.ResultLimited).Inc()
	wait := max(int(math.Ceil(res.RetryAfter().Seconds())), 1)
	writeError(s.errorHandler, w, r, handler.NewAPIError(http.StatusTooManyRequests, fmt.Sprintf(msgTooManyAttempts, wait)))
}

func clientIPKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.FromRequest(r)
}
