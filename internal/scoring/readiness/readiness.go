// Package readiness scores a single startup pitch for investor readiness
// from completeness signals rather than content quality.
package readiness

import (
	"time"
	"unicode/utf8"

	"fundlink/internal/common/logger"
)

// maxScore caps the reported readiness; a heuristic assessment is never
// presented as perfect.
const maxScore = 92

// readyThreshold splits INVESTOR_READY from NEEDS_WORK (strictly above).
const readyThreshold = 70

const (
	StatusInvestorReady = "INVESTOR_READY"
	StatusNeedsWork     = "NEEDS_WORK"
)

// Pitch is the single-entity input to the evaluator. Unknown fields are
// ignored; only the completeness signals below matter.
type Pitch struct {
	Description string                 `json:"description"`
	Team        map[string]interface{} `json:"team,omitempty"`
	Financials  map[string]interface{} `json:"financials,omitempty"`
	MarketSize  interface{}            `json:"marketSize,omitempty"`
	TAM         interface{}            `json:"tam,omitempty"`
}

// GapAnalysis separates must-fix items from nice-to-have ones.
type GapAnalysis struct {
	Critical    []string `json:"critical"`
	Recommended []string `json:"recommended"`
}

// Analysis is the qualitative half of the result.
type Analysis struct {
	Strengths   []string    `json:"strengths"`
	Weaknesses  []string    `json:"weaknesses"`
	GapAnalysis GapAnalysis `json:"gap_analysis"`
	NextSteps   []string    `json:"next_steps"`
}

// Meta stamps the result with provenance.
type Meta struct {
	Demo        bool      `json:"demo,omitempty"`
	Provider    string    `json:"provider"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Result is the full readiness assessment.
type Result struct {
	Score    int      `json:"score"`
	Status   string   `json:"status"`
	Analysis Analysis `json:"analysis"`
	Meta     Meta     `json:"_meta"`
}

// signals are the boolean/size facts extracted from a pitch; the rule
// tables below key off them.
type signals struct {
	descriptionLength int
	hasTeam           bool
	hasFinancials     bool
	hasMarket         bool
}

// textRule picks one of two messages depending on a signal, making the
// canned analysis testable separately from the scoring math.
type textRule struct {
	when    func(s signals) bool
	present string
	absent  string
}

func (r textRule) pick(s signals) string {
	if r.when(s) {
		return r.present
	}
	return r.absent
}

var strengthRules = []textRule{
	{always, "Clear problem identification in pitch", ""},
	{hasTeam, "Team structure defined", "Opportunity for team expansion"},
	{hasMarket, "Market size articulated", "Market opportunity to be detailed"},
	{always, "Foundational business model outlined", ""},
}

var weaknessRules = []textRule{
	{hasFinancials, "Financial model requires validation", "Financial projections need development"},
	{always, "Go-to-market strategy could be more detailed", ""},
	{hasTeam, "Team track record to be highlighted", "Team completeness needs attention"},
	{always, "Unit economics require clarification", ""},
}

var criticalGaps = []string{
	"Detailed 18-month financial projections",
	"Customer acquisition cost (CAC) analysis",
	"Monthly burn rate and runway calculation",
}

var recommendedGaps = []string{
	"Competitive landscape mapping",
	"Key partnership strategy",
	"Regulatory compliance assessment",
}

var nextSteps = []string{
	"Complete financial model with 3 scenarios",
	"Define CAC and LTV targets by segment",
	"Prepare investor deck with clear ask",
	"Document team credentials and advisors",
	"Create milestone-based roadmap",
}

func always(signals) bool          { return true }
func hasTeam(s signals) bool       { return s.hasTeam }
func hasMarket(s signals) bool     { return s.hasMarket }
func hasFinancials(s signals) bool { return s.hasFinancials }

// present treats nil, empty strings and zero numbers as absent, matching
// how form data distinguishes "not provided" from "provided".
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

// Evaluator computes readiness scores. Stateless, safe for concurrent use.
type Evaluator struct {
	baseScore int
	logger    logger.Logger
}

// NewEvaluator creates an Evaluator. baseScore is normally 35; the legacy
// client-side variant used 40 and remains reachable through configuration.
func NewEvaluator(baseScore int, log logger.Logger) *Evaluator {
	if baseScore <= 0 {
		baseScore = 35
	}
	return &Evaluator{baseScore: baseScore, logger: log}
}

// Evaluate scores a pitch. Description length bonuses are tiered and
// additive; a long pitch collects all three.
func (e *Evaluator) Evaluate(pitch Pitch) Result {
	// Length tiers count characters, not bytes, so non-ASCII pitches are
	// scored the same as ASCII ones.
	s := signals{
		descriptionLength: utf8.RuneCountInString(pitch.Description),
		hasTeam:           len(pitch.Team) > 0,
		hasFinancials:     len(pitch.Financials) > 0,
		hasMarket:         present(pitch.MarketSize) || present(pitch.TAM),
	}

	score := e.baseScore
	if s.descriptionLength > 50 {
		score += 10
	}
	if s.descriptionLength > 150 {
		score += 10
	}
	if s.descriptionLength > 300 {
		score += 5
	}
	if s.hasTeam {
		score += 15
	}
	if s.hasFinancials {
		score += 15
	}
	if s.hasMarket {
		score += 10
	}
	if score > maxScore {
		score = maxScore
	}

	status := StatusNeedsWork
	if score > readyThreshold {
		status = StatusInvestorReady
	}

	result := Result{
		Score:  score,
		Status: status,
		Analysis: Analysis{
			Strengths:  applyRules(strengthRules, s),
			Weaknesses: applyRules(weaknessRules, s),
			GapAnalysis: GapAnalysis{
				Critical:    criticalGaps,
				Recommended: recommendedGaps,
			},
			NextSteps: nextSteps,
		},
		Meta: Meta{
			Demo:        true,
			Provider:    "demo",
			GeneratedAt: time.Now().UTC(),
		},
	}

	if e.logger != nil {
		e.logger.Debug("Readiness evaluated", map[string]interface{}{
			"score":  result.Score,
			"status": result.Status,
		})
	}

	return result
}

func applyRules(rules []textRule, s signals) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if msg := r.pick(s); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}
