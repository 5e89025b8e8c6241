// internal/provider/demo.go
package provider

import (
	"context"
	"encoding/json"

	"fundlink/internal/scoring/readiness"
	"fundlink/internal/scoring/report"
)

// DemoProvider runs the deterministic local algorithms. It never fails
// and also serves as the fallback for every external provider.
type DemoProvider struct {
	evaluator *readiness.Evaluator
}

func NewDemoProvider(evaluator *readiness.Evaluator) *DemoProvider {
	return &DemoProvider{evaluator: evaluator}
}

func (p *DemoProvider) Name() string { return "demo" }

func (p *DemoProvider) EvaluateReadiness(_ context.Context, raw json.RawMessage) (interface{}, error) {
	var pitch readiness.Pitch
	// Junk input degrades to an empty pitch scoring the base score.
	_ = json.Unmarshal(raw, &pitch)
	return p.evaluator.Evaluate(pitch), nil
}

func (p *DemoProvider) GenerateReport(_ context.Context, startupID string, _ json.RawMessage) (interface{}, error) {
	return report.Generate(startupID), nil
}
