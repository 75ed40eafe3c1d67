// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis stores and an HTTP middleware.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Every Store applies the same refill arithmetic, so a
// deployment can move from MemoryStore to RedisStore without behaviour
// changes.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//	    Capacity:       3,
//	    RefillRate:     3,
//	    RefillInterval: 30 * time.Second,
//	})
//
//	r.With(ratelimiter.Middleware(limiter, keyFn,
//	    ratelimiter.CountOnly(func(status int) bool { return status == http.StatusUnauthorized }),
//	)).Post("/verify-password", h)
//
// With CountOnly the middleware takes a token before the handler runs and
// gives it back unless the response matches, which turns the bucket into a
// failed attempt counter that also holds under concurrent requests. Taking
// the last token restarts the refill period, so a client that empties the
// bucket waits a full RefillInterval.
package ratelimiter
