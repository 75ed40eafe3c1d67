package ratelimiter

import (
	"context"
	"time"
)

// Store persists bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for now, takes tokens and returns what
	// is left together with the next refill. A negative remaining count means
	// denied; the bucket is then left as it was. Consuming 0 tokens only reads
	// the state and a negative count gives tokens back, up to capacity.
	ConsumeTokens(ctx context.Context, key string, tokens int, now time.Time, cfg Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the state for key.
	Reset(ctx context.Context, key string) error
}
