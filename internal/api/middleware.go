// internal/api/middleware.go
package api

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"fundlink/internal/common/errors"
	"fundlink/internal/common/logger"
	"fundlink/internal/common/metrics"
	"fundlink/internal/ratelimit"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDFromContext returns the request ID set by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDMiddleware tags each request with a UUID for log correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoveryMiddleware converts handler panics into a 500 envelope instead
// of dropping the connection.
func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Handler panic recovered", map[string]interface{}{
						"requestId": RequestIDFromContext(r.Context()),
						"path":      r.URL.Path,
						"panic":     fmt.Sprint(rec),
					})
					writeStandardError(w, errors.NewInternalError(fmt.Errorf("%v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller for rate limiting: forwarded header
// first, then the connection's remote address.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware enforces the per-client window on the AI analysis
// endpoints. Denials return 429 explicitly so callers can implement
// backoff; the limiter never falls back silently.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			decision := limiter.Allow(r.Context(), key)

			resetSeconds := int(math.Ceil(decision.ResetIn.Seconds()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetSeconds))

			if !decision.Allowed {
				metrics.RateLimitRejections.WithLabelValues(r.URL.Path).Inc()
				log.Warn("Rate limit exceeded", map[string]interface{}{
					"client": key,
					"path":   r.URL.Path,
				})
				writeRateLimited(w, resetSeconds)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
