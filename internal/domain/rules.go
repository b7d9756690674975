package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status used to select deduction rules
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingHeadOfHousehold   FilingStatus = "head_of_household"
	FilingMarriedJointly    FilingStatus = "married_filing_jointly"
	FilingMarriedSeparately FilingStatus = "married_filing_separately"
)

// AllFilingStatuses lists the statuses in display order
func AllFilingStatuses() []FilingStatus {
	return []FilingStatus{FilingSingle, FilingHeadOfHousehold, FilingMarriedJointly, FilingMarriedSeparately}
}

// ParseFilingStatus accepts the canonical names plus a few common abbreviations
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return FilingSingle, nil
	case "head_of_household", "hoh":
		return FilingHeadOfHousehold, nil
	case "married_filing_jointly", "mfj", "joint":
		return FilingMarriedJointly, nil
	case "married_filing_separately", "mfs":
		return FilingMarriedSeparately, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
	}
}

// DisplayName returns a human readable label
func (fs FilingStatus) DisplayName() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingHeadOfHousehold:
		return "Head of household"
	case FilingMarriedJointly:
		return "Married filing jointly"
	case FilingMarriedSeparately:
		return "Married filing separately"
	default:
		return string(fs)
	}
}

// PhaseoutPolicy is a deduction cap that falls linearly to zero over an
// income band starting at PhaseStart and PhaseRange wide.
type PhaseoutPolicy struct {
	MaxValue   decimal.Decimal `yaml:"max_value" json:"max_value"`
	PhaseStart decimal.Decimal `yaml:"phase_start" json:"phase_start"`
	PhaseRange decimal.Decimal `yaml:"phase_range" json:"phase_range"`
}

// NewPhaseoutPolicy builds a validated policy
func NewPhaseoutPolicy(maxValue, phaseStart, phaseRange decimal.Decimal) (PhaseoutPolicy, error) {
	p := PhaseoutPolicy{MaxValue: maxValue, PhaseStart: phaseStart, PhaseRange: phaseRange}
	if err := p.Validate(); err != nil {
		return PhaseoutPolicy{}, err
	}
	return p, nil
}

// Validate checks a policy loaded from configuration
func (p PhaseoutPolicy) Validate() error {
	if p.MaxValue.IsNegative() {
		return ErrNegativeCap
	}
	if p.PhaseStart.IsNegative() {
		return ErrNegativePhaseStart
	}
	if p.PhaseRange.LessThanOrEqual(decimal.Zero) {
		return ErrDegeneratePhaseRange
	}
	return nil
}

// PhaseEnd is the income at which the deduction reaches zero
func (p PhaseoutPolicy) PhaseEnd() decimal.Decimal {
	return p.PhaseStart.Add(p.PhaseRange)
}

// StatusRules holds the deduction rules for one filing status
type StatusRules struct {
	Eligible bool           `yaml:"eligible" json:"eligible"`
	Overtime PhaseoutPolicy `yaml:"overtime" json:"overtime"`
	Tips     PhaseoutPolicy `yaml:"tips" json:"tips"`
}

// RulesMetadata describes where a rule set came from
type RulesMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	Description string `yaml:"description" json:"description"`
}

// Rules is the full rule table keyed by filing status
type Rules struct {
	Metadata       RulesMetadata                `yaml:"metadata" json:"metadata"`
	Tolerance      decimal.Decimal              `yaml:"tolerance" json:"tolerance"` // allowed gap between input methods
	FilingStatuses map[FilingStatus]StatusRules `yaml:"filing_statuses" json:"filing_statuses"`
}

// For returns the rules for a filing status
func (r *Rules) For(status FilingStatus) (StatusRules, error) {
	sr, ok := r.FilingStatuses[status]
	if !ok {
		return StatusRules{}, fmt.Errorf("%w: no rules configured for %q", ErrUnknownFilingStatus, status)
	}
	return sr, nil
}

// Statuses returns the configured statuses in display order
func (r *Rules) Statuses() []FilingStatus {
	var out []FilingStatus
	for _, fs := range AllFilingStatuses() {
		if _, ok := r.FilingStatuses[fs]; ok {
			out = append(out, fs)
		}
	}
	return out
}
