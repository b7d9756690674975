package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EligibilityAnswers holds the yes/no screening answers keyed by question ID
type EligibilityAnswers struct {
	Answers  map[string]bool `yaml:"answers,omitempty" json:"answers,omitempty"`
	Override bool            `yaml:"override,omitempty" json:"override,omitempty"`
}

// EstimateInput is everything the user reports for one estimate
type EstimateInput struct {
	PreparedFor  string             `yaml:"prepared_for,omitempty" json:"prepared_for,omitempty"`
	FilingStatus FilingStatus       `yaml:"filing_status" json:"filing_status"`
	Income       decimal.Decimal    `yaml:"income" json:"income"` // MAGI
	Mode         MultiplierMode     `yaml:"multiplier_mode,omitempty" json:"multiplier_mode,omitempty"`
	Tiers        []OvertimeTier     `yaml:"overtime" json:"overtime"`
	Tips         decimal.Decimal    `yaml:"tips,omitempty" json:"tips,omitempty"`
	Eligibility  EligibilityAnswers `yaml:"eligibility,omitempty" json:"eligibility,omitempty"`
}

// DeductionResult is the outcome for one deduction type
type DeductionResult struct {
	GrossPremium    decimal.Decimal `json:"gross_premium"`
	PhaseoutCeiling decimal.Decimal `json:"phaseout_ceiling"`
	FinalDeduction  decimal.Decimal `json:"final_deduction"`
}

// NewDeductionResult applies the min(gross, ceiling) rule, never going below zero
func NewDeductionResult(gross, ceiling decimal.Decimal) DeductionResult {
	final := decimal.Max(decimal.Zero, decimal.Min(gross, ceiling))
	return DeductionResult{GrossPremium: gross, PhaseoutCeiling: ceiling, FinalDeduction: final}
}

// Limited reports whether the phase-out ceiling reduced the deduction
func (r DeductionResult) Limited() bool {
	return r.FinalDeduction.LessThan(r.GrossPremium)
}

// TierResult records how the premium of one tier was derived
type TierResult struct {
	Name            string           `json:"name"`
	Multiplier      decimal.Decimal  `json:"multiplier"`
	ReportedPremium *decimal.Decimal `json:"reported_premium,omitempty"`
	HoursPremium    *decimal.Decimal `json:"hours_premium,omitempty"`
	Premium         decimal.Decimal  `json:"premium"`
}

// EligibilityResult is the outcome of the screening questions
type EligibilityResult struct {
	Screened   bool     `json:"screened"`
	Eligible   bool     `json:"eligible"`
	Overridden bool     `json:"overridden,omitempty"`
	Failed     []string `json:"failed,omitempty"`
	Unanswered []string `json:"unanswered,omitempty"`
}

// EstimateSummary is the full estimate shown to the user and exported
type EstimateSummary struct {
	Reference      string            `json:"reference,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at,omitempty"`
	PreparedFor    string            `json:"prepared_for,omitempty"`
	FilingStatus   FilingStatus      `json:"filing_status"`
	Income         decimal.Decimal   `json:"income"`
	Mode           MultiplierMode    `json:"multiplier_mode"`
	Tiers          []TierResult      `json:"tiers"`
	Overtime       DeductionResult   `json:"overtime"`
	Tips           DeductionResult   `json:"tips"`
	TotalDeduction decimal.Decimal   `json:"total_deduction"`
	Eligibility    EligibilityResult `json:"eligibility"`
	Warnings       []string          `json:"warnings,omitempty"`
}
