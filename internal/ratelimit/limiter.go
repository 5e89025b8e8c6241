// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"time"

	"fundlink/internal/common/logger"
)

// Decision is the outcome of a rate limit check for one request.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter enforces a per-client request ceiling over a fixed window.
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
	logger      logger.Logger
}

func NewLimiter(store Store, maxRequests int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		logger:      log,
	}
}

// Allow records one request for the client key and decides whether it may
// proceed. Store failures fail open: advisory scoring should degrade to
// unlimited rather than reject traffic when the backend is down.
func (l *Limiter) Allow(ctx context.Context, key string) Decision {
	if key == "" {
		key = "default"
	}

	count, resetIn, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		l.logger.WithError(err).Warn("Rate limit store unavailable, allowing request", map[string]interface{}{
			"client": key,
		})
		return Decision{Allowed: true, Remaining: l.maxRequests, ResetIn: l.window}
	}

	remaining := l.maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= int64(l.maxRequests),
		Remaining: remaining,
		ResetIn:   resetIn,
	}
}

// Window exposes the configured window for header computation.
func (l *Limiter) Window() time.Duration { return l.window }

// MaxRequests exposes the configured ceiling.
func (l *Limiter) MaxRequests() int { return l.maxRequests }
