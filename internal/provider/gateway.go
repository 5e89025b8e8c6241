// internal/provider/gateway.go
package provider

import (
	"context"
	"encoding/json"
	"time"

	"fundlink/internal/common/config"
	"fundlink/internal/common/errors"
	"fundlink/internal/common/logger"
	"fundlink/internal/common/metrics"
)

// Outcome is what the gateway hands the API layer. When an external
// provider failed, Data holds the demo fallback result and Fallback/Err
// record what happened; the caller still returns success to the client.
type Outcome struct {
	Data     interface{}
	Provider string
	Fallback bool
	Err      string
}

// Status reports provider configuration for health checks.
type Status struct {
	Provider string `json:"provider"`
	OpenAI   struct {
		Configured bool   `json:"configured"`
		Model      string `json:"model"`
	} `json:"openai"`
	Gemini struct {
		Configured bool   `json:"configured"`
		Model      string `json:"model"`
	} `json:"gemini"`
	RateLimit struct {
		WindowMs    int `json:"windowMs"`
		MaxRequests int `json:"maxRequests"`
	} `json:"rateLimit"`
}

// Gateway routes scoring calls to the active provider and falls back to
// the demo algorithm on any external failure. Advisory endpoints never
// surface a raw provider error.
type Gateway struct {
	active  Provider
	demo    *DemoProvider
	timeout time.Duration
	cfg     config.AIConfig
	rlCfg   config.RateLimitConfig
	logger  logger.Logger
}

func NewGateway(active Provider, demo *DemoProvider, cfg config.AIConfig, rlCfg config.RateLimitConfig, log logger.Logger) *Gateway {
	timeout := config.GetDuration(cfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		active:  active,
		demo:    demo,
		timeout: timeout,
		cfg:     cfg,
		rlCfg:   rlCfg,
		logger:  log,
	}
}

// EvaluateReadiness scores a pitch through the active provider.
func (g *Gateway) EvaluateReadiness(ctx context.Context, pitch json.RawMessage) Outcome {
	return g.call(ctx, func(ctx context.Context, p Provider) (interface{}, error) {
		return p.EvaluateReadiness(ctx, pitch)
	})
}

// GenerateReport produces a due-diligence report through the active provider.
func (g *Gateway) GenerateReport(ctx context.Context, startupID string, startupData json.RawMessage) Outcome {
	return g.call(ctx, func(ctx context.Context, p Provider) (interface{}, error) {
		return p.GenerateReport(ctx, startupID, startupData)
	})
}

func (g *Gateway) call(ctx context.Context, fn func(context.Context, Provider) (interface{}, error)) Outcome {
	if g.active == nil || g.active.Name() == "demo" {
		data, _ := fn(ctx, g.demo)
		return Outcome{Data: data, Provider: "demo"}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data, err := fn(callCtx, g.active)
	if err == nil {
		return Outcome{Data: data, Provider: g.active.Name()}
	}
	if callCtx.Err() == context.DeadlineExceeded {
		err = errors.NewProviderTimeoutError(g.active.Name())
	}

	g.logger.WithError(err).Warn("Provider failed, falling back to demo", map[string]interface{}{
		"provider": g.active.Name(),
	})
	metrics.ProviderFallbacks.WithLabelValues(g.active.Name()).Inc()

	// The parent context still bounds the demo path, which never blocks.
	fallbackData, _ := fn(ctx, g.demo)
	return Outcome{
		Data:     fallbackData,
		Provider: g.active.Name(),
		Fallback: true,
		Err:      err.Error(),
	}
}

// Status reports the current provider configuration.
func (g *Gateway) Status() Status {
	var s Status
	s.Provider = g.cfg.Provider
	s.OpenAI.Configured = g.cfg.OpenAI.APIKey != ""
	s.OpenAI.Model = g.cfg.OpenAI.Model
	s.Gemini.Configured = g.cfg.Gemini.APIKey != ""
	s.Gemini.Model = g.cfg.Gemini.Model
	s.RateLimit.WindowMs = g.rlCfg.WindowMs
	s.RateLimit.MaxRequests = g.rlCfg.MaxRequests
	return s
}
