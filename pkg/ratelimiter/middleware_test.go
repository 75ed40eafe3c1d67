package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corpsite/pkg/ratelimiter"
)

func byRemoteAddr(r *http.Request) string { return r.RemoteAddr }

func do(h http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareCountsEveryRequest(t *testing.T) {
	t.Parallel()
	b := newBucket(t, newClock(), lockout)
	h := ratelimiter.Middleware(b, byRemoteAddr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := range 3 {
		rec := do(h, "10.0.0.1")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, []string{"2", "1", "0"}[i], rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := do(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(h, "10.0.0.2").Code)
}

func TestMiddlewareCountOnlyFailures(t *testing.T) {
	t.Parallel()
	c := newClock()
	b := newBucket(t, c, lockout)

	var limited *ratelimiter.Result
	mw := ratelimiter.Middleware(b, byRemoteAddr,
		ratelimiter.CountOnly(func(status int) bool { return status == http.StatusUnauthorized }),
		ratelimiter.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request, res *ratelimiter.Result) {
			limited = res
			w.WriteHeader(http.StatusTooManyRequests)
		}),
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ok") == "1" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	okReq := func() int {
		req := httptest.NewRequest(http.MethodPost, "/?ok=1", nil)
		req.RemoteAddr = "10.0.0.1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for range 5 {
		require.Equal(t, http.StatusOK, okReq(), "successes are free")
	}

	for range 3 {
		assert.Equal(t, http.StatusUnauthorized, do(h, "10.0.0.1").Code)
	}

	rec := do(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotNil(t, limited)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusTooManyRequests, okReq(), "locked out even with the right answer")

	c.Advance(30 * time.Second)
	assert.Equal(t, http.StatusOK, okReq())
}

func TestMiddlewareCountOnlyConcurrent(t *testing.T) {
	t.Parallel()
	b := newBucket(t, newClock(), lockout)

	var evaluated atomic.Int32
	h := ratelimiter.Middleware(b, byRemoteAddr,
		ratelimiter.CountOnly(func(status int) bool { return status == http.StatusUnauthorized }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		evaluated.Add(1)
		time.Sleep(2 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	var (
		wg      sync.WaitGroup
		limited atomic.Int32
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if do(h, "10.0.0.1").Code == http.StatusTooManyRequests {
				limited.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), evaluated.Load(), "only the burst reaches the handler")
	assert.Equal(t, int32(47), limited.Load())
}

type failingLimiter struct{ ratelimiter.RateLimiter }

func (failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func TestMiddlewareStoreError(t *testing.T) {
	t.Parallel()

	var got error
	h := ratelimiter.Middleware(failingLimiter{}, byRemoteAddr,
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusServiceUnavailable)
		}),
	)(http.NotFoundHandler())

	assert.Equal(t, http.StatusServiceUnavailable, do(h, "10.0.0.1").Code)
	assert.True(t, errors.Is(got, ratelimiter.ErrStoreUnavailable))
}

func TestMiddlewareEmptyKeySkips(t *testing.T) {
	t.Parallel()
	h := ratelimiter.Middleware(failingLimiter{}, ratelimiter.Static(""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	assert.Equal(t, http.StatusNoContent, do(h, "10.0.0.1").Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1"

	key := ratelimiter.Composite(ratelimiter.Static("verify"), ratelimiter.Static(""), byRemoteAddr)(req)
	assert.Equal(t, "verify:10.0.0.1", key)

	long := ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(req)
	assert.LessOrEqual(t, len(long), 13)
	assert.NotEmpty(t, long)

	assert.Empty(t, ratelimiter.Composite(ratelimiter.Static(""))(req))
}
