// internal/provider/openai.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	httpclient "fundlink/internal/common/http"

	"fundlink/internal/common/config"
	"fundlink/internal/common/errors"
)

// OpenAIProvider calls the chat completions API with JSON response mode.
type OpenAIProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *httpclient.Client
}

func NewOpenAIProvider(cfg config.AIConfig) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:    cfg.OpenAI.APIKey,
		model:     cfg.OpenAI.Model,
		baseURL:   cfg.OpenAI.BaseURL,
		maxTokens: cfg.OpenAI.MaxTokens,
		client:    httpclient.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) EvaluateReadiness(ctx context.Context, pitch json.RawMessage) (interface{}, error) {
	return p.complete(ctx, readinessPrompt(pitch), string(pitch))
}

func (p *OpenAIProvider) GenerateReport(ctx context.Context, startupID string, startupData json.RawMessage) (interface{}, error) {
	return p.complete(ctx, reportPrompt(startupID, startupData), "")
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) complete(ctx context.Context, systemPrompt, userContent string) (interface{}, error) {
	if p.apiKey == "" {
		return nil, errors.NewProviderUnavailableError("openai", fmt.Errorf("api key not configured"))
	}
	if userContent == "" {
		userContent = "Analyze this startup."
	}

	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		MaxTokens: p.maxTokens,
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewProviderUnavailableError("openai", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewProviderBadResponseError("openai", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.NewProviderBadResponseError("openai", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Errorf("openai api error: %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = fmt.Errorf("%s", parsed.Error.Message)
		}
		return nil, errors.NewProviderUnavailableError("openai", msg)
	}

	if len(parsed.Choices) == 0 {
		return nil, errors.NewProviderBadResponseError("openai", fmt.Errorf("no choices in response"))
	}

	var result map[string]interface{}
	content := extractJSON(parsed.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, errors.NewProviderBadResponseError("openai", err)
	}

	return result, nil
}
