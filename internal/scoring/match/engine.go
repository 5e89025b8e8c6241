// internal/scoring/match/engine.go
package match

import (
	"math"
	"time"

	"fundlink/internal/common/logger"
)

const resultVersion = "2.0"

// maxScore caps the reported score below 100; the engine never claims
// certainty about a match.
const maxScore = 98

// dimensions holds every dimension outcome for reason/risk rule checks.
type dimensions struct {
	Domain   DimensionResult
	Stage    DimensionResult
	Ticket   DimensionResult
	Location DimensionResult
	Thesis   int
	Traction int
}

// keyReasonRules maps strong dimension outcomes to surfaced positives,
// checked in declaration order.
var keyReasonRules = []struct {
	message string
	hit     func(d dimensions) bool
}{
	{"Domain alignment is strong", func(d dimensions) bool { return d.Domain.Match == TierExact }},
	{"Stage matches investor preference", func(d dimensions) bool { return d.Stage.Match == TierExact }},
	{"Ask within ticket range", func(d dimensions) bool { return d.Ticket.Match == TierExact }},
	{"Location preference match", func(d dimensions) bool { return d.Location.Match == TierExact }},
	{"Investment thesis alignment", func(d dimensions) bool { return d.Thesis > 70 }},
	{"Strong traction metrics", func(d dimensions) bool { return d.Traction > 70 }},
}

// riskFlagRules maps weak dimension outcomes to surfaced cautions.
var riskFlagRules = []struct {
	message string
	hit     func(d dimensions) bool
}{
	{"Domain mismatch risk", func(d dimensions) bool { return d.Domain.Score < 50 }},
	{"Stage preference mismatch", func(d dimensions) bool { return d.Stage.Score < 50 }},
	{"Ticket size outside range", func(d dimensions) bool { return d.Ticket.Score < 50 }},
	{"Limited traction data", func(d dimensions) bool { return d.Traction < 50 }},
}

const (
	defaultReason   = "Basic compatibility assessed"
	defaultRiskFlag = "Standard due diligence recommended"
)

// Engine computes startup/investor compatibility scores. It is stateless
// and safe for concurrent use.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Compute runs every dimension matcher and aggregates a weighted score.
// Malformed or missing input degrades to neutral dimension scores; Compute
// never fails.
func (e *Engine) Compute(startup StartupProfile, investor InvestorProfile, opts Options) MatchResult {
	weights := DefaultWeights()
	if opts.Weights != nil {
		weights = opts.Weights.Apply(weights)
	}

	d := dimensions{
		Domain:   MatchDomain(startup.EffectiveDomain(), investor.EffectiveDomains()),
		Stage:    MatchStage(startup.Stage, investor.EffectiveStages()),
		Ticket:   MatchTicket(startup.FundingAsk(), investor.EffectiveTicket()),
		Location: MatchLocation(startup.EffectiveLocation(), investor.EffectiveLocations()),
		Thesis:   ScoreThesis(startup, investor),
		Traction: ScoreTraction(startup),
	}

	weighted := float64(d.Domain.Score)*weights.Domain +
		float64(d.Stage.Score)*weights.Stage +
		float64(d.Ticket.Score)*weights.Ticket +
		float64(d.Location.Score)*weights.Location +
		float64(d.Thesis)*weights.Thesis +
		float64(d.Traction)*weights.Traction

	finalScore := int(math.Round(weighted))
	if finalScore > maxScore {
		finalScore = maxScore
	}
	if finalScore < 0 {
		finalScore = 0
	}

	result := MatchResult{
		MatchScore: finalScore,
		FitLevel:   fitLevel(finalScore),
		Breakdown: map[string]DimensionResult{
			"domain":   d.Domain,
			"stage":    d.Stage,
			"ticket":   d.Ticket,
			"location": d.Location,
			"thesis":   {Score: d.Thesis},
			"traction": {Score: d.Traction},
		},
		KeyReasons: collectReasons(d),
		RiskFlags:  collectRiskFlags(d),
		Weights:    weights,
		Meta: ResultMeta{
			CalculatedAt: time.Now().UTC(),
			Version:      resultVersion,
		},
	}

	if e.logger != nil {
		e.logger.Debug("Match score computed", map[string]interface{}{
			"matchScore": result.MatchScore,
			"fitLevel":   result.FitLevel,
		})
	}

	return result
}

func fitLevel(score int) string {
	switch {
	case score >= 80:
		return "HIGH"
	case score >= 60:
		return "MEDIUM"
	case score >= 40:
		return "MODERATE"
	default:
		return "LOW"
	}
}

func collectReasons(d dimensions) []string {
	reasons := make([]string, 0, len(keyReasonRules))
	for _, rule := range keyReasonRules {
		if rule.hit(d) {
			reasons = append(reasons, rule.message)
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, defaultReason)
	}
	return reasons
}

func collectRiskFlags(d dimensions) []string {
	flags := make([]string, 0, len(riskFlagRules))
	for _, rule := range riskFlagRules {
		if rule.hit(d) {
			flags = append(flags, rule.message)
		}
	}
	if len(flags) == 0 {
		flags = append(flags, defaultRiskFlag)
	}
	return flags
}
