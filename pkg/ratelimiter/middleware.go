package ratelimiter

import (
	"context"
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// Composite joins non-empty keys with ":"; results over 64 chars are hashed
// with FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// Static returns a KeyFunc that always yields key; used to namespace routes.
func Static(key string) KeyFunc {
	return func(*http.Request) string { return key }
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	countIf      func(status int) bool
	limitHandler func(w http.ResponseWriter, r *http.Request, res *Result)
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// CountOnly makes the middleware keep the token only for responses whose
// status satisfies fn; any other response gives it back. Requests are still
// refused while the bucket is empty. Used to limit failed attempts without
// penalising successful ones.
func CountOnly(fn func(status int) bool) MiddlewareOption {
	return func(c *middlewareConfig) { c.countIf = fn }
}

// WithLimitHandler replaces the default plain 429 response.
func WithLimitHandler(fn func(w http.ResponseWriter, r *http.Request, res *Result)) MiddlewareOption {
	return func(c *middlewareConfig) { c.limitHandler = fn }
}

// WithErrorHandler replaces the default plain 500 response for store failures.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) { c.errorHandler = fn }
}

// Middleware limits requests per key. It sets X-RateLimit-* headers and, when
// refusing, Retry-After.
func Middleware(limiter RateLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{
		limitHandler: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			setHeaders(w, res)

			if !res.Allowed() {
				if wait := res.RetryAfter(); wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				cfg.limitHandler(w, r, res)
				return
			}

			if cfg.countIf == nil {
				next.ServeHTTP(w, r)
				return
			}

			// the token is held while the handler runs so concurrent requests
			// cannot all pass on the same remaining tokens
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if !cfg.countIf(rec.status) {
				// response is already written; a store failure only loses one refund
				_ = limiter.Refund(context.WithoutCancel(r.Context()), key, 1)
			}
		})
	}
}

func setHeaders(w http.ResponseWriter, res *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
