// Package report generates the long-form due-diligence report served by
// the demo provider. The structure mirrors what external providers are
// prompted to return, so both paths share one response shape.
package report

import "time"

type Meta struct {
	Type           string    `json:"type"`
	Author         string    `json:"author"`
	Timestamp      time.Time `json:"timestamp"`
	Classification string    `json:"classification"`
	StartupID      string    `json:"startupId"`
	Demo           bool      `json:"demo,omitempty"`
}

type ExecutiveFraming struct {
	ProblemStatement string `json:"problem_statement"`
	SolutionThesis   string `json:"solution_thesis"`
	ROIProjection    string `json:"roi_projection"`
}

type PESTELAnalysis struct {
	Political     string `json:"political"`
	Economic      string `json:"economic"`
	Social        string `json:"social"`
	Technological string `json:"technological"`
	Environmental string `json:"environmental"`
	Legal         string `json:"legal"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type GapAnalysis struct {
	AsIs       string `json:"as_is"`
	ToBe       string `json:"to_be"`
	ActionPlan string `json:"action_plan"`
}

type StrategicDiagnosis struct {
	MarketContext  string         `json:"market_context"`
	PESTELAnalysis PESTELAnalysis `json:"pestel_analysis"`
	SWOT           SWOT           `json:"swot"`
	GapAnalysis    GapAnalysis    `json:"gap_analysis"`
}

type Financials struct {
	BurnRate      string `json:"burn_rate"`
	UnitEconomics string `json:"unit_economics"`
	NPVProjection string `json:"npv_projection"`
	IRR           string `json:"irr"`
}

type RiskEntry struct {
	Category    string `json:"category"`
	Risk        string `json:"risk"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
}

type FinancialRiskAssessment struct {
	Financials Financials  `json:"financials"`
	RiskMatrix []RiskEntry `json:"risk_matrix"`
}

type RoadmapEntry struct {
	Phase     string `json:"phase"`
	Milestone string `json:"milestone"`
}

type RACI struct {
	Accountable string `json:"accountable"`
	Responsible string `json:"responsible"`
	Consulted   string `json:"consulted"`
	Informed    string `json:"informed"`
}

type ImplementationGovernance struct {
	Roadmap []RoadmapEntry `json:"roadmap"`
	RACI    RACI           `json:"raci"`
}

type FinalVerdict struct {
	Decision  string `json:"decision"` // INVEST, PASS or WATCH_LIST
	Rationale string `json:"rationale"`
}

// Report is the full due-diligence document.
type Report struct {
	Meta                     Meta                     `json:"meta"`
	ExecutiveFraming         ExecutiveFraming         `json:"executive_framing"`
	StrategicDiagnosis       StrategicDiagnosis       `json:"strategic_diagnosis"`
	FinancialRiskAssessment  FinancialRiskAssessment  `json:"financial_risk_assessment"`
	ImplementationGovernance ImplementationGovernance `json:"implementation_governance"`
	FinalVerdict             FinalVerdict             `json:"final_verdict"`
}

// Generate produces the deterministic demo report for a startup.
func Generate(startupID string) Report {
	return Report{
		Meta: Meta{
			Type:           "SENIOR_BA_DUE_DILIGENCE",
			Author:         "FundLink AI (Senior Business Analyst Mode)",
			Timestamp:      time.Now().UTC(),
			Classification: "CONFIDENTIAL",
			StartupID:      startupID,
			Demo:           true,
		},
		ExecutiveFraming: ExecutiveFraming{
			ProblemStatement: "Legacy infrastructure in target sector causes 30% efficiency loss, creating opportunity for technology-enabled disruption.",
			SolutionThesis:   "AI-driven orchestration layer reduces operational latency by 40% based on pilot program results.",
			ROIProjection:    "Projected 3.5x ROI within 24 months based on current trajectory and market conditions.",
		},
		StrategicDiagnosis: StrategicDiagnosis{
			MarketContext: "Sector is consolidating. First-mover advantage is eroding; execution speed is now the primary differentiator.",
			PESTELAnalysis: PESTELAnalysis{
				Political:     "Neutral. No immediate regulatory threats identified.",
				Economic:      "Favorable. Enterprise spend on automation is up 15% YoY.",
				Social:        "High adoption readiness among target workforce demographic.",
				Technological: "Core IP appears defensible but requires rapid iteration to maintain edge.",
				Environmental: "Low direct impact. ESG considerations minimal.",
				Legal:         "Data privacy compliance (GDPR/CCPA) is a critical path item.",
			},
			SWOT: SWOT{
				Strengths: []string{
					"Proprietary algorithm with demonstrated results",
					"Low churn rate (<2%) indicating product-market fit",
					"Experienced technical leadership",
				},
				Weaknesses: []string{
					"High customer acquisition cost relative to LTV",
					"Sales team capacity constraints",
					"Limited brand equity in enterprise segment",
				},
				Opportunities: []string{
					"Expansion into adjacent verticals (FinTech, Healthcare)",
					"Strategic partnership with enterprise platforms",
					"Geographic expansion to underserved markets",
				},
				Threats: []string{
					"Big tech entry into the space",
					"Talent scarcity in specialized AI roles",
					"Economic downturn impact on enterprise budgets",
				},
			},
			GapAnalysis: GapAnalysis{
				AsIs:       "Manual workflows, high error rate, siloed data systems.",
				ToBe:       "Fully automated decision engine with real-time insights.",
				ActionPlan: "Hire VP of Sales, Certify Security Protocols, Scale Server Infrastructure.",
			},
		},
		FinancialRiskAssessment: FinancialRiskAssessment{
			Financials: Financials{
				BurnRate:      "High (4 months runway remaining)",
				UnitEconomics: "LTV/CAC: 1.5x (Target: 3x)",
				NPVProjection: "$4.2M (5-year horizon)",
				IRR:           "22% (Estimated)",
			},
			RiskMatrix: []RiskEntry{
				{Category: "Market", Risk: "Competitor Price War", Probability: "Medium", Impact: "High", Mitigation: "Focus on premium enterprise segment with sticky contracts."},
				{Category: "Operational", Risk: "Key Person Risk (Founder)", Probability: "Low", Impact: "Critical", Mitigation: "Key man insurance & equity vesting schedule."},
				{Category: "Technical", Risk: "Model Hallucination", Probability: "Medium", Impact: "High", Mitigation: "Human-in-the-loop validation layer implementation."},
				{Category: "Financial", Risk: "Runway Extension", Probability: "Medium", Impact: "High", Mitigation: "Bridge round preparation and cost optimization."},
			},
		},
		ImplementationGovernance: ImplementationGovernance{
			Roadmap: []RoadmapEntry{
				{Phase: "Q1", Milestone: "Security Audit & SOC2 Compliance Initiation"},
				{Phase: "Q2", Milestone: "Scale Sales Team to 5 FTEs"},
				{Phase: "Q3", Milestone: "Series A Fundraising Closure"},
				{Phase: "Q4", Milestone: "Geographic Expansion Planning"},
			},
			RACI: RACI{
				Accountable: "CEO",
				Responsible: "CTO / Product Lead",
				Consulted:   "Board / Advisors",
				Informed:    "All Hands / Team",
			},
		},
		FinalVerdict: FinalVerdict{
			Decision:  "WATCH_LIST",
			Rationale: "Technically superior solution but commercially immature. Re-evaluate in 3 months once unit economics improve and sales team scaling is demonstrated.",
		},
	}
}
