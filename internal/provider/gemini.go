// internal/provider/gemini.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fundlink/internal/common/errors"

	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API through the official client with a
// JSON response MIME type.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) EvaluateReadiness(ctx context.Context, pitch json.RawMessage) (interface{}, error) {
	prompt := readinessPrompt(pitch) + "\n\n" + string(pitch)
	return p.generate(ctx, prompt)
}

func (p *GeminiProvider) GenerateReport(ctx context.Context, startupID string, startupData json.RawMessage) (interface{}, error) {
	return p.generate(ctx, reportPrompt(startupID, startupData))
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (interface{}, error) {
	if p == nil || p.client == nil {
		return nil, errors.NewProviderUnavailableError("gemini", fmt.Errorf("client not initialized"))
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, errors.NewProviderUnavailableError("gemini", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return nil, errors.NewProviderBadResponseError("gemini", fmt.Errorf("empty response"))
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(extractJSON(output)), &result); err != nil {
		return nil, errors.NewProviderBadResponseError("gemini", err)
	}

	return result, nil
}
