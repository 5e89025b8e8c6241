package readiness

import (
	"strings"
	"testing"

	"fundlink/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateFullPitch(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	result := evaluator.Evaluate(Pitch{
		Description: strings.Repeat("a", 350),
		Team:        map[string]interface{}{"founders": 2},
		Financials:  map[string]interface{}{"arr": "$500k"},
		MarketSize:  "$5B",
	})

	// 35 + 10 + 10 + 5 + 15 + 15 + 10 = 100, capped at 92
	assert.Equal(t, 92, result.Score)
	assert.Equal(t, StatusInvestorReady, result.Status)
	assert.Contains(t, result.Analysis.Strengths, "Team structure defined")
	assert.Contains(t, result.Analysis.Strengths, "Market size articulated")
	assert.Contains(t, result.Analysis.Weaknesses, "Financial model requires validation")
}

func TestEvaluateEmptyPitch(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	result := evaluator.Evaluate(Pitch{})

	assert.Equal(t, 35, result.Score)
	assert.Equal(t, StatusNeedsWork, result.Status)
	assert.Contains(t, result.Analysis.Strengths, "Opportunity for team expansion")
	assert.Contains(t, result.Analysis.Weaknesses, "Financial projections need development")
	assert.Contains(t, result.Analysis.Weaknesses, "Team completeness needs attention")
	assert.Len(t, result.Analysis.GapAnalysis.Critical, 3)
	assert.Len(t, result.Analysis.NextSteps, 5)
}

func TestEvaluateDescriptionTiersAreAdditive(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{"short", 30, 35},
		{"first tier", 60, 45},
		{"second tier", 200, 55},
		{"third tier", 350, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Evaluate(Pitch{Description: strings.Repeat("x", tt.length)})
			assert.Equal(t, tt.expected, result.Score)
		})
	}
}

func TestEvaluateDescriptionTiersCountRunes(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	// 80 CJK characters are 240 bytes; only the first tier applies.
	result := evaluator.Evaluate(Pitch{Description: strings.Repeat("市", 80)})

	assert.Equal(t, 45, result.Score)
}

func TestEvaluateTAMCountsAsMarket(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	result := evaluator.Evaluate(Pitch{TAM: "$12B"})

	assert.Equal(t, 45, result.Score)
	assert.Contains(t, result.Analysis.Strengths, "Market size articulated")
}

func TestEvaluateLegacyBaseScore(t *testing.T) {
	evaluator := NewEvaluator(40, logger.NewNoOpLogger())

	result := evaluator.Evaluate(Pitch{})

	assert.Equal(t, 40, result.Score)
	assert.Equal(t, StatusNeedsWork, result.Status)
}

func TestEvaluateReadyThresholdIsStrict(t *testing.T) {
	evaluator := NewEvaluator(35, logger.NewNoOpLogger())

	// 35 + 10 + 15 + 10 = 70, exactly at the threshold but not above it
	result := evaluator.Evaluate(Pitch{
		Description: strings.Repeat("d", 60),
		Team:        map[string]interface{}{"size": 4},
		MarketSize:  "$1B",
	})

	assert.Equal(t, 70, result.Score)
	assert.Equal(t, StatusNeedsWork, result.Status)
}
