package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fundlink/internal/common/config"
	"fundlink/internal/common/logger"
	"fundlink/internal/provider"
	"fundlink/internal/ratelimit"
	"fundlink/internal/scoring/match"
	"fundlink/internal/scoring/readiness"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "openai" }

func (failingProvider) EvaluateReadiness(context.Context, json.RawMessage) (interface{}, error) {
	return nil, fmt.Errorf("dial tcp: connection refused")
}

func (failingProvider) GenerateReport(context.Context, string, json.RawMessage) (interface{}, error) {
	return nil, fmt.Errorf("dial tcp: connection refused")
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "fundlink"
	cfg.AI.Provider = "demo"
	cfg.AI.Timeout = 5000
	cfg.RateLimit.WindowMs = 60000
	cfg.RateLimit.MaxRequests = 20
	cfg.Scoring.ReadinessBase = 35
	return cfg
}

func newTestRouter(t *testing.T, active provider.Provider, maxRequests int) *mux.Router {
	t.Helper()
	log := logger.NewTestLogger(t)
	cfg := testConfig()

	demo := provider.NewDemoProvider(readiness.NewEvaluator(cfg.Scoring.ReadinessBase, log))
	gateway := provider.NewGateway(active, demo, cfg.AI, cfg.RateLimit, log)
	server := NewServer(match.NewEngine(log), gateway, nil, cfg, log)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), maxRequests, time.Minute, log)

	return NewRouter(server, limiter, log)
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleMatch(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/match", `{
		"startup": {"domain": "fintech", "stage": "seed", "ask": "500k", "location": "Bangalore"},
		"investor": {"focusDomains": ["fintech"], "preferredStages": ["seed"], "ticketRange": "$250K - $1M"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool              `json:"success"`
		Data    match.MatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.GreaterOrEqual(t, envelope.Data.MatchScore, 60)
	assert.LessOrEqual(t, envelope.Data.MatchScore, 98)
	assert.NotEmpty(t, envelope.Data.Breakdown)
}

func TestHandleMatchMissingInvestor(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/match", `{"startup": {"domain": "fintech"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool     `json:"success"`
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Validation failed", envelope.Error)
	assert.NotEmpty(t, envelope.Details)
}

func TestHandleMatchAliasRoute(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/ai/match-score", `{"startup": {}, "investor": {}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleAnalyze(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/analyze", `{
		"description": "A marketplace connecting SME lenders with vetted borrowers across emerging markets.",
		"team": {"founders": 2},
		"marketSize": "$4B"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	var envelope struct {
		Success bool             `json:"success"`
		Data    readiness.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	// 35 + 10 description + 15 team + 10 market
	assert.Equal(t, 70, envelope.Data.Score)
	assert.Equal(t, readiness.StatusNeedsWork, envelope.Data.Status)
}

func TestHandleAnalyzeRejectsScriptContent(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/analyze", `{"description": "nice pitch <script>alert(1)</script>"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid content detected")
}

func TestHandleAnalyzeProviderFailureFallsBack(t *testing.T) {
	router := newTestRouter(t, failingProvider{}, 20)

	rec := postJSON(router, "/api/ai/analyze", `{"description": "a long enough pitch description here"}`)

	// Provider failure alone never produces a 500 on advisory endpoints.
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success  bool             `json:"success"`
		Data     readiness.Result `json:"data"`
		Fallback bool             `json:"_fallback"`
		Err      string           `json:"_error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.True(t, envelope.Fallback)
	assert.Contains(t, envelope.Err, "connection refused")
	assert.NotZero(t, envelope.Data.Score)
}

func TestHandleReport(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/report", `{"startupId": "startup-7"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Meta struct {
				StartupID string `json:"startupId"`
			} `json:"meta"`
			FinalVerdict struct {
				Decision string `json:"decision"`
			} `json:"final_verdict"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "startup-7", envelope.Data.Meta.StartupID)
	assert.Equal(t, "WATCH_LIST", envelope.Data.FinalVerdict.Decision)
}

func TestHandleReportRequiresStartupID(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	rec := postJSON(router, "/api/ai/report", `{"startupData": {"domain": "saas"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Startup ID is required")
}

func TestRateLimitReturns429(t *testing.T) {
	router := newTestRouter(t, nil, 2)
	body := `{"description": "a long enough pitch description here"}`

	for i := 0; i < 2; i++ {
		rec := postJSON(router, "/api/ai/analyze", body)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := postJSON(router, "/api/ai/analyze", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var envelope struct {
		Success    bool   `json:"success"`
		Error      string `json:"error"`
		RetryAfter int    `json:"retryAfter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Rate limit exceeded", envelope.Error)
	assert.Greater(t, envelope.RetryAfter, 0)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestMatchEndpointNotRateLimited(t *testing.T) {
	router := newTestRouter(t, nil, 1)
	body := `{"startup": {}, "investor": {}}`

	for i := 0; i < 5; i++ {
		rec := postJSON(router, "/api/ai/match", body)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool            `json:"success"`
		Data    provider.Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "demo", envelope.Data.Provider)
	assert.Equal(t, 20, envelope.Data.RateLimit.MaxRequests)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(logger.NewTestLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ai/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal error")
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, 20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
