package ratelimiter

import (
	"fmt"
	"time"
)

// Result describes a bucket after a check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request overdrew the bucket
	ResetAt   time.Time // next refill
	now       time.Time
}

// Allowed reports whether the consumed tokens were available.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// Exhausted reports whether no token is left for another attempt.
func (r *Result) Exhausted() bool {
	return r.Remaining <= 0
}

// RetryAfter returns the wait until the next refill, or 0 while tokens remain.
func (r *Result) RetryAfter() time.Duration {
	if !r.Exhausted() {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           // burst size
	RefillRate     int           // tokens added per interval
	RefillInterval time.Duration // refill period
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill applies the elapsed intervals to a bucket state and returns the new
// token count and refill timestamp. Shared by every Store so all backends
// agree on the arithmetic.
func refill(tokens int, lastRefill, now time.Time, cfg Config) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	if elapsed < cfg.RefillInterval {
		return tokens, lastRefill
	}
	// capped so huge idle gaps cannot overflow
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(elapsed/cfg.RefillInterval), maxIntervals))
	return min(tokens+intervals*cfg.RefillRate, cfg.Capacity), now
}

// apply refills the bucket, then takes n tokens (n > 0) or returns -n tokens
// (n < 0). It returns the stored token count, the refill timestamp and the
// remaining count reported to the caller.
//
// A request that cannot be served is reported with a negative remaining count
// and leaves the bucket untouched. Taking the last token restarts the refill
// period, so an emptied bucket stays empty for a full interval.
func apply(tokens int, lastRefill, now time.Time, n int, cfg Config) (int, time.Time, int) {
	tokens, lastRefill = refill(tokens, lastRefill, now, cfg)
	switch {
	case n > 0:
		if tokens < n {
			return tokens, lastRefill, tokens - n
		}
		tokens -= n
		if tokens == 0 {
			lastRefill = now
		}
	case n < 0:
		tokens = min(tokens-n, cfg.Capacity)
	}
	return tokens, lastRefill, tokens
}
