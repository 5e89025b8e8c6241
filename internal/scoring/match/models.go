// internal/scoring/match/models.go
package match

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"fundlink/internal/money"
)

// FlexValue accepts a JSON string or number. Profile data arrives from
// loosely validated forms, so amounts show up both ways.
type FlexValue string

func (f *FlexValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexValue(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexValue(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

func (f FlexValue) String() string { return string(f) }

func (f FlexValue) IsZero() bool { return f == "" }

// Amount parses the value as dollars, degrading to 0 on junk.
func (f FlexValue) Amount() float64 { return money.ParseAmount(string(f)) }

// Float parses the value as a plain number, degrading to 0.
func (f FlexValue) Float() float64 {
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0
	}
	return v
}

// Ticket accepts either a range string ("$1M - $5M") or a {min, max}
// object; legacy investor records use both shapes.
type Ticket struct {
	Raw string
	Min FlexValue
	Max FlexValue
}

func (t *Ticket) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Raw = s
		return nil
	}

	var obj struct {
		Min       FlexValue `json:"min"`
		Max       FlexValue `json:"max"`
		MinTicket FlexValue `json:"minTicket"`
		MaxTicket FlexValue `json:"maxTicket"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Min = obj.Min
	if t.Min.IsZero() {
		t.Min = obj.MinTicket
	}
	t.Max = obj.Max
	if t.Max.IsZero() {
		t.Max = obj.MaxTicket
	}
	return nil
}

func (t Ticket) IsZero() bool {
	return t.Raw == "" && t.Min.IsZero() && t.Max.IsZero()
}

// Band resolves the ticket to a numeric range. An object ticket without a
// usable max is open ended, same as an empty range string.
func (t Ticket) Band() money.Range {
	if t.Raw != "" {
		return money.ParseTicketRange(t.Raw)
	}
	max := t.Max.Amount()
	if max == 0 {
		max = math.Inf(1)
	}
	return money.Range{Min: t.Min.Amount(), Max: max}
}

// StartupProfile carries the startup-side matching attributes. Several
// fields have legacy aliases that older records still populate.
type StartupProfile struct {
	Domain   string `json:"domain"`
	Industry string `json:"industry"`

	Stage string `json:"stage"`

	TicketSize  FlexValue `json:"ticketSize"`
	Ask         FlexValue `json:"ask"`
	RaiseAmount FlexValue `json:"raiseAmount"`

	Location string `json:"location"`
	HQ       string `json:"hq"`

	Category      string `json:"category"`
	BusinessModel string `json:"businessModel"`

	Revenue    FlexValue `json:"revenue"`
	Users      FlexValue `json:"users"`
	Customers  FlexValue `json:"customers"`
	GrowthRate FlexValue `json:"growthRate"`
	TeamSize   FlexValue `json:"teamSize"`
}

func (s StartupProfile) EffectiveDomain() string {
	if s.Domain != "" {
		return s.Domain
	}
	return s.Industry
}

func (s StartupProfile) FundingAsk() FlexValue {
	if !s.TicketSize.IsZero() {
		return s.TicketSize
	}
	if !s.Ask.IsZero() {
		return s.Ask
	}
	return s.RaiseAmount
}

func (s StartupProfile) EffectiveLocation() string {
	if s.Location != "" {
		return s.Location
	}
	return s.HQ
}

// InvestorProfile carries the investor-side matching attributes.
type InvestorProfile struct {
	Domains      []string `json:"domains"`
	FocusDomains []string `json:"focusDomains"`

	Stages          []string `json:"stages"`
	PreferredStages []string `json:"preferredStages"`

	TicketSize  Ticket `json:"ticketSize"`
	TicketRange Ticket `json:"ticketRange"`

	PreferredLocations []string `json:"preferredLocations"`
	Locations          []string `json:"locations"`

	ThesisKeywords []string `json:"thesisKeywords"`
	Keywords       []string `json:"keywords"`
	FocusAreas     []string `json:"focusAreas"`
}

func (i InvestorProfile) EffectiveDomains() []string {
	if len(i.Domains) > 0 {
		return i.Domains
	}
	return i.FocusDomains
}

func (i InvestorProfile) EffectiveStages() []string {
	if len(i.Stages) > 0 {
		return i.Stages
	}
	return i.PreferredStages
}

func (i InvestorProfile) EffectiveTicket() Ticket {
	if !i.TicketSize.IsZero() {
		return i.TicketSize
	}
	return i.TicketRange
}

func (i InvestorProfile) EffectiveLocations() []string {
	if len(i.PreferredLocations) > 0 {
		return i.PreferredLocations
	}
	return i.Locations
}

func (i InvestorProfile) EffectiveThesisKeywords() []string {
	if len(i.ThesisKeywords) > 0 {
		return i.ThesisKeywords
	}
	return i.Keywords
}

// Tier labels a dimension outcome qualitatively.
type Tier string

const (
	TierExact    Tier = "exact"
	TierPartial  Tier = "partial"
	TierSimilar  Tier = "similar"
	TierAdjacent Tier = "adjacent"
	TierClose    Tier = "close"
	TierRegional Tier = "regional"
	TierWeak     Tier = "weak"
	TierMismatch Tier = "mismatch"
	TierUnknown  Tier = "unknown"
	TierNone     Tier = "none"
	TierOpen     Tier = "open"
)

// DimensionResult is the outcome of a single dimension matcher.
type DimensionResult struct {
	Score   int    `json:"score"`
	Match   Tier   `json:"match,omitempty"`
	Details string `json:"details,omitempty"`
}

// Weights maps each scoring dimension to its contribution. Defaults sum
// to 1.0; partial overrides merge without renormalization.
type Weights struct {
	Domain   float64 `json:"domain"`
	Stage    float64 `json:"stage"`
	Ticket   float64 `json:"ticket"`
	Location float64 `json:"location"`
	Thesis   float64 `json:"thesis"`
	Traction float64 `json:"traction"`
}

// WeightOverrides carries per-call weight changes. Nil fields keep the
// default weight.
type WeightOverrides struct {
	Domain   *float64 `json:"domain,omitempty"`
	Stage    *float64 `json:"stage,omitempty"`
	Ticket   *float64 `json:"ticket,omitempty"`
	Location *float64 `json:"location,omitempty"`
	Thesis   *float64 `json:"thesis,omitempty"`
	Traction *float64 `json:"traction,omitempty"`
}

// Apply merges the overrides onto base. No renormalization happens; an
// aggressive override can push the aggregate past the usual range before
// clamping, matching the historical behavior downstream callers expect.
func (w *WeightOverrides) Apply(base Weights) Weights {
	if w == nil {
		return base
	}
	if w.Domain != nil {
		base.Domain = *w.Domain
	}
	if w.Stage != nil {
		base.Stage = *w.Stage
	}
	if w.Ticket != nil {
		base.Ticket = *w.Ticket
	}
	if w.Location != nil {
		base.Location = *w.Location
	}
	if w.Thesis != nil {
		base.Thesis = *w.Thesis
	}
	if w.Traction != nil {
		base.Traction = *w.Traction
	}
	return base
}

// Options tunes a single Compute call.
type Options struct {
	Weights *WeightOverrides `json:"weights,omitempty"`
}

// ResultMeta stamps a result with provenance.
type ResultMeta struct {
	CalculatedAt time.Time `json:"calculatedAt"`
	Version      string    `json:"version"`
}

// MatchResult is the full compatibility assessment for one pair.
type MatchResult struct {
	MatchScore int                        `json:"matchScore"`
	FitLevel   string                     `json:"fitLevel"`
	Breakdown  map[string]DimensionResult `json:"breakdown"`
	KeyReasons []string                   `json:"keyReasons"`
	RiskFlags  []string                   `json:"riskFlags"`
	Weights    Weights                    `json:"weights"`
	Meta       ResultMeta                 `json:"_meta"`
}
