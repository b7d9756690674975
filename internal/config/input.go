package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/eligibility"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of estimate input files. A non-empty Mode
// replaces the document's multiplier_mode before validation.
type InputParser struct {
	Mode domain.MultiplierMode
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an estimate input from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.EstimateInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates an estimate input document
func (ip *InputParser) Parse(data []byte) (*domain.EstimateInput, error) {
	var input domain.EstimateInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if ip.Mode != "" {
		input.Mode = ip.Mode
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInput validates and normalizes an estimate input in place
func (ip *InputParser) ValidateInput(input *domain.EstimateInput) error {
	status, err := domain.ParseFilingStatus(string(input.FilingStatus))
	if err != nil {
		return err
	}
	input.FilingStatus = status

	mode, err := domain.ParseMultiplierMode(string(input.Mode))
	if err != nil {
		return err
	}
	input.Mode = mode

	if input.Income.IsNegative() {
		return fmt.Errorf("income cannot be negative")
	}
	if input.Tips.IsNegative() {
		return fmt.Errorf("tips cannot be negative")
	}

	for i := range input.Tiers {
		if err := ip.validateTier(&input.Tiers[i], mode); err != nil {
			return fmt.Errorf("overtime tier %d validation failed: %w", i+1, err)
		}
	}

	for id := range input.Eligibility.Answers {
		if _, ok := eligibility.Find(eligibility.DefaultQuestions, id); !ok {
			return fmt.Errorf("eligibility answer references unknown question: %s", id)
		}
	}

	return nil
}

// validateTier checks one overtime tier
func (ip *InputParser) validateTier(tier *domain.OvertimeTier, mode domain.MultiplierMode) error {
	if !tier.HasReportedAmount() && !tier.HasHours() {
		return fmt.Errorf("either amount or hours with base_rate is required")
	}
	if (tier.Hours == nil) != (tier.BaseRate == nil) {
		return fmt.Errorf("hours and base_rate must be given together")
	}
	if tier.HasPay() {
		if err := mode.Validate(tier.Multiplier); err != nil {
			return err
		}
	}

	kind, err := domain.ParseAmountKind(string(tier.Kind))
	if err != nil {
		return err
	}
	tier.Kind = kind

	if tier.Amount != nil && tier.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if tier.Hours != nil && tier.Hours.IsNegative() {
		return fmt.Errorf("hours cannot be negative")
	}
	if tier.BaseRate != nil && tier.BaseRate.LessThan(decimal.Zero) {
		return fmt.Errorf("base rate cannot be negative")
	}
	return nil
}
