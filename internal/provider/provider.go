// Package provider abstracts the scoring backend: a deterministic local
// algorithm or an external LLM reached over a JSON chat contract. External
// failures always fall back to the local algorithm.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	_ "embed"
)

//go:embed readiness_prompt.md
var readinessPromptTemplate string

//go:embed report_prompt.md
var reportPromptTemplate string

// Provider produces readiness assessments and due-diligence reports.
// External implementations return the parsed JSON document; the demo
// implementation returns typed structs with the same wire shape.
type Provider interface {
	Name() string
	EvaluateReadiness(ctx context.Context, pitch json.RawMessage) (interface{}, error)
	GenerateReport(ctx context.Context, startupID string, startupData json.RawMessage) (interface{}, error)
}

// renderPrompt substitutes {{KEY}} placeholders into a template. Prompt
// wording lives in the embedded markdown files, not in code.
func renderPrompt(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

func readinessPrompt(pitch json.RawMessage) string {
	return renderPrompt(readinessPromptTemplate, map[string]string{
		"PITCH_DATA": prettyJSON(pitch),
	})
}

func reportPrompt(startupID string, startupData json.RawMessage) string {
	return renderPrompt(reportPromptTemplate, map[string]string{
		"STARTUP_ID":   startupID,
		"STARTUP_DATA": prettyJSON(startupData),
	})
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// extractJSON strips markdown code fences that chat models wrap around
// JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
