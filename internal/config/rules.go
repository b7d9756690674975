package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RULE ASSUMPTIONS:
//
// 1. Overtime cap is $12,500 per return ($25,000 joint), phasing out from
//    $150,000 MAGI ($300,000 joint).
// 2. The phase-out band is $100,000 wide for every status by default. Some
//    readings of the provision give wider bands; override with a rules file.
// 3. Qualified tips are capped at $25,000 for every status with the same
//    phase-out start.
// 4. Married filing separately is not eligible.
// 5. Tolerance is the allowed gap between the reported-amount and hours x
//    rate premiums of a tier. Zero demands an exact match.

// DefaultRules returns the built-in 2025 rule table
func DefaultRules() *domain.Rules {
	policy := func(max, start, rng int64) domain.PhaseoutPolicy {
		return domain.PhaseoutPolicy{
			MaxValue:   decimal.NewFromInt(max),
			PhaseStart: decimal.NewFromInt(start),
			PhaseRange: decimal.NewFromInt(rng),
		}
	}
	return &domain.Rules{
		Metadata: domain.RulesMetadata{
			TaxYear:     2025,
			Description: "Built-in qualified overtime and tips deduction rules",
		},
		Tolerance: decimal.NewFromInt(1),
		FilingStatuses: map[domain.FilingStatus]domain.StatusRules{
			domain.FilingSingle: {
				Eligible: true,
				Overtime: policy(12500, 150000, 100000),
				Tips:     policy(25000, 150000, 100000),
			},
			domain.FilingHeadOfHousehold: {
				Eligible: true,
				Overtime: policy(12500, 150000, 100000),
				Tips:     policy(25000, 150000, 100000),
			},
			domain.FilingMarriedJointly: {
				Eligible: true,
				Overtime: policy(25000, 300000, 100000),
				Tips:     policy(25000, 300000, 100000),
			},
			domain.FilingMarriedSeparately: {
				Eligible: false,
				Overtime: policy(12500, 150000, 100000),
				Tips:     policy(25000, 150000, 100000),
			},
		},
	}
}

// LoadRulesFromFile loads a rule table from YAML. Statuses missing from the
// file keep their built-in rules.
func LoadRulesFromFile(filename string) (*domain.Rules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	return ParseRules(data)
}

// rulesDocument keeps metadata and each status as raw nodes so they can be
// decoded on top of the built-in values. String keys allow abbreviations
// like "mfj".
type rulesDocument struct {
	Metadata       yaml.Node            `yaml:"metadata"`
	Tolerance      *decimal.Decimal     `yaml:"tolerance"`
	FilingStatuses map[string]yaml.Node `yaml:"filing_statuses"`
}

// ParseRules decodes a rules document on top of DefaultRules. Fields left
// out of a status keep their built-in values, so an overlay can change one
// phase-out range without restating eligibility or the other policy.
func ParseRules(data []byte) (*domain.Rules, error) {
	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	rules := DefaultRules()
	if !doc.Metadata.IsZero() {
		if err := doc.Metadata.Decode(&rules.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse rules metadata: %w", err)
		}
	}
	if doc.Tolerance != nil {
		rules.Tolerance = *doc.Tolerance
	}
	for key, node := range doc.FilingStatuses {
		status, err := domain.ParseFilingStatus(key)
		if err != nil {
			return nil, err
		}
		sr := rules.FilingStatuses[status]
		if err := node.Decode(&sr); err != nil {
			return nil, fmt.Errorf("failed to parse %s rules: %w", status, err)
		}
		rules.FilingStatuses[status] = sr
	}

	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules checks every policy in the table. A zero or negative
// phase-out range is rejected here rather than at calculation time.
func ValidateRules(rules *domain.Rules) error {
	if rules == nil {
		return fmt.Errorf("rules are required")
	}
	if rules.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance cannot be negative")
	}
	if len(rules.FilingStatuses) == 0 {
		return fmt.Errorf("no filing statuses configured")
	}
	for status, sr := range rules.FilingStatuses {
		if err := sr.Overtime.Validate(); err != nil {
			return fmt.Errorf("%s overtime policy: %w", status, err)
		}
		if err := sr.Tips.Validate(); err != nil {
			return fmt.Errorf("%s tips policy: %w", status, err)
		}
	}
	return nil
}

// ResolveRules loads the rules file when a path is given, otherwise the
// built-in rules.
func ResolveRules(path string) (*domain.Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	return LoadRulesFromFile(path)
}
