package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Wait blocks until the rate limit allows another request or ctx is done
	Wait(ctx context.Context) error
	// Pause blocks every caller for d, used when the server asks to slow down
	Pause(d time.Duration)
}

// TokenBucket paces requests with a token bucket refilled at a fixed rate
type TokenBucket struct {
	limiter     *rate.Limiter
	mu          sync.Mutex
	pausedUntil time.Time
}

// NewTokenBucket allows perSecond requests per second with the given burst.
// A non-positive rate disables limiting.
func NewTokenBucket(perSecond float64, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &TokenBucket{limiter: rate.NewLimiter(limit, burst)}
}

// Allow checks if a request can proceed
func (tb *TokenBucket) Allow() bool {
	if time.Now().Before(tb.resumeAt()) {
		return false
	}
	return tb.limiter.Allow()
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait(ctx context.Context) error {
	if delay := time.Until(tb.resumeAt()); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return tb.limiter.Wait(ctx)
}

// Pause holds back every request until d has elapsed
func (tb *TokenBucket) Pause(d time.Duration) {
	if d <= 0 {
		return
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if until := time.Now().Add(d); until.After(tb.pausedUntil) {
		tb.pausedUntil = until
	}
}

func (tb *TokenBucket) resumeAt() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.pausedUntil
}

// Unlimited returns a limiter that never blocks
func Unlimited() *TokenBucket {
	return NewTokenBucket(0, 1)
}
