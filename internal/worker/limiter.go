package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits outbound calls per provider so batch runs do not
// flood an LLM endpoint.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter. Each provider gets its own bucket with the
// given refill rate and burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the provider's bucket allows one call or the context
// is canceled.
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.getLimiter(provider).Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (l *Limiter) Allow(provider string) bool {
	return l.getLimiter(provider).Allow()
}

// SetRate adjusts the rate for one provider's bucket.
func (l *Limiter) SetRate(provider string, requestsPerSecond float64) {
	l.getLimiter(provider).SetLimit(rate.Limit(requestsPerSecond))
}

func (l *Limiter) getLimiter(provider string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[provider]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[provider]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[provider] = limiter
	return limiter
}
