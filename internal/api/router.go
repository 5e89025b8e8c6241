// internal/api/router.go
package api

import (
	"net/http"

	"fundlink/internal/common/logger"
	"fundlink/internal/ratelimit"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes. Legacy route aliases are kept because older
// frontend builds still call them.
func NewRouter(s *Server, limiter *ratelimit.Limiter, log logger.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(log))

	r.HandleFunc("/health", s.HandleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/ai/status", s.HandleStatus).Methods("GET")

	// Match scoring is unlimited; it is pure local computation.
	r.HandleFunc("/api/ai/match", s.HandleMatch).Methods("POST")
	r.HandleFunc("/ai/match-score", s.HandleMatch).Methods("POST")

	// Analysis and report endpoints may hit external providers and share
	// the per-client rate limit.
	limited := rateLimited(limiter, log)
	r.Handle("/api/ai/analyze", limited(s.HandleAnalyze)).Methods("POST")
	r.Handle("/ai/readiness-score", limited(s.HandleAnalyze)).Methods("POST")
	r.Handle("/api/ai/report", limited(s.HandleReport)).Methods("POST")
	r.Handle("/ai/investment-report", limited(s.HandleReport)).Methods("POST")

	return r
}

func rateLimited(limiter *ratelimit.Limiter, log logger.Logger) func(http.HandlerFunc) http.Handler {
	middleware := RateLimitMiddleware(limiter, log)
	return func(h http.HandlerFunc) http.Handler {
		return middleware(h)
	}
}
