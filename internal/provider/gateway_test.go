package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"fundlink/internal/common/config"
	"fundlink/internal/common/logger"
	"fundlink/internal/scoring/readiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingProvider simulates an unreachable external backend.
type failingProvider struct{}

func (failingProvider) Name() string { return "openai" }

func (failingProvider) EvaluateReadiness(context.Context, json.RawMessage) (interface{}, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingProvider) GenerateReport(context.Context, string, json.RawMessage) (interface{}, error) {
	return nil, fmt.Errorf("connection refused")
}

func newTestGateway(t *testing.T, active Provider) *Gateway {
	t.Helper()
	demo := NewDemoProvider(readiness.NewEvaluator(35, logger.NewTestLogger(t)))
	cfg := config.AIConfig{Provider: "openai", Timeout: 5000}
	rlCfg := config.RateLimitConfig{WindowMs: 60000, MaxRequests: 20}
	return NewGateway(active, demo, cfg, rlCfg, logger.NewTestLogger(t))
}

func TestGatewayFallsBackOnProviderError(t *testing.T) {
	gw := newTestGateway(t, failingProvider{})

	outcome := gw.EvaluateReadiness(context.Background(), json.RawMessage(`{"description":"a fintech startup"}`))

	assert.True(t, outcome.Fallback)
	assert.Contains(t, outcome.Err, "connection refused")

	result, ok := outcome.Data.(readiness.Result)
	require.True(t, ok, "fallback must produce a demo result")
	assert.Equal(t, readiness.StatusNeedsWork, result.Status)
}

// stalledProvider blocks until the call context expires.
type stalledProvider struct{}

func (stalledProvider) Name() string { return "openai" }

func (stalledProvider) EvaluateReadiness(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledProvider) GenerateReport(ctx context.Context, _ string, _ json.RawMessage) (interface{}, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestGatewayTimeoutFallsBack(t *testing.T) {
	demo := NewDemoProvider(readiness.NewEvaluator(35, logger.NewTestLogger(t)))
	cfg := config.AIConfig{Provider: "openai", Timeout: 10}
	gw := NewGateway(stalledProvider{}, demo, cfg,
		config.RateLimitConfig{WindowMs: 60000, MaxRequests: 20}, logger.NewTestLogger(t))

	outcome := gw.EvaluateReadiness(context.Background(), json.RawMessage(`{"description":"slow path"}`))

	assert.True(t, outcome.Fallback)
	assert.Contains(t, outcome.Err, "timeout")

	_, ok := outcome.Data.(readiness.Result)
	require.True(t, ok, "fallback must still produce a demo result")
}

func TestGatewayReportFallback(t *testing.T) {
	gw := newTestGateway(t, failingProvider{})

	outcome := gw.GenerateReport(context.Background(), "startup-1", nil)

	assert.True(t, outcome.Fallback)
	assert.NotNil(t, outcome.Data)
}

func TestGatewayDemoNeverFallsBack(t *testing.T) {
	demo := NewDemoProvider(readiness.NewEvaluator(35, logger.NewTestLogger(t)))
	gw := NewGateway(demo, demo, config.AIConfig{Provider: "demo", Timeout: 5000},
		config.RateLimitConfig{WindowMs: 60000, MaxRequests: 20}, logger.NewTestLogger(t))

	outcome := gw.EvaluateReadiness(context.Background(), json.RawMessage(`{}`))

	assert.False(t, outcome.Fallback)
	assert.Equal(t, "demo", outcome.Provider)

	result, ok := outcome.Data.(readiness.Result)
	require.True(t, ok)
	assert.Equal(t, 35, result.Score)
}

func TestGatewayStatus(t *testing.T) {
	cfg := config.AIConfig{Provider: "openai"}
	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.Gemini.Model = "gemini-1.5-flash"

	demo := NewDemoProvider(readiness.NewEvaluator(35, logger.NewTestLogger(t)))
	gw := NewGateway(failingProvider{}, demo, cfg,
		config.RateLimitConfig{WindowMs: 60000, MaxRequests: 20}, logger.NewTestLogger(t))

	status := gw.Status()

	assert.Equal(t, "openai", status.Provider)
	assert.True(t, status.OpenAI.Configured)
	assert.False(t, status.Gemini.Configured)
	assert.Equal(t, 20, status.RateLimit.MaxRequests)
}

func TestRenderPrompt(t *testing.T) {
	out := renderPrompt("Hello {{NAME}}, data: {{DATA}}", map[string]string{
		"NAME": "analyst",
		"DATA": `{"x":1}`,
	})
	assert.Equal(t, `Hello analyst, data: {"x":1}`, out)
}

func TestExtractJSON(t *testing.T) {
	fenced := "```json\n{\"score\": 80}\n```"
	assert.Equal(t, `{"score": 80}`, extractJSON(fenced))
	assert.Equal(t, `{"score": 80}`, extractJSON(`{"score": 80}`))
}
