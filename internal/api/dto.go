package api

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OvertimeTierDTO is one overtime tier in a request
type OvertimeTierDTO struct {
	Label      string      `json:"label,omitempty" validate:"max=40"`
	Multiplier json.Number `json:"multiplier" validate:"required,numeric"`
	Amount     json.Number `json:"amount,omitempty" validate:"omitempty,numeric"`
	Kind       string      `json:"kind,omitempty" validate:"omitempty,oneof=total premium premium_only unknown"`
	Hours      json.Number `json:"hours,omitempty" validate:"omitempty,numeric"`
	BaseRate   json.Number `json:"base_rate,omitempty" validate:"omitempty,numeric"`
}

// EstimateRequest is the body of POST /api/estimate and /api/summary
type EstimateRequest struct {
	PreparedFor    string            `json:"prepared_for,omitempty" validate:"max=200"`
	FilingStatus   string            `json:"filing_status" validate:"required,oneof=single head_of_household married_filing_jointly married_filing_separately hoh mfj mfs"`
	Income         json.Number       `json:"income" validate:"required,numeric"`
	MultiplierMode string            `json:"multiplier_mode,omitempty" validate:"omitempty,oneof=strict lenient"`
	Overtime       []OvertimeTierDTO `json:"overtime" validate:"max=10,dive"`
	Tips           json.Number       `json:"tips,omitempty" validate:"omitempty,numeric"`
	Eligibility    map[string]bool   `json:"eligibility,omitempty"`
	Override       bool              `json:"override,omitempty"`
}

// ToInput converts the request into an estimate input. Structural checks
// are left to the validator and config.InputParser.
func (r EstimateRequest) ToInput() (*domain.EstimateInput, error) {
	income, err := decimal.NewFromString(r.Income.String())
	if err != nil {
		return nil, fmt.Errorf("income: %w", err)
	}
	tips, err := optionalDecimal(r.Tips)
	if err != nil {
		return nil, fmt.Errorf("tips: %w", err)
	}

	input := &domain.EstimateInput{
		PreparedFor:  r.PreparedFor,
		FilingStatus: domain.FilingStatus(r.FilingStatus),
		Income:       income,
		Mode:         domain.MultiplierMode(r.MultiplierMode),
		Eligibility:  domain.EligibilityAnswers{Answers: r.Eligibility, Override: r.Override},
	}
	if tips != nil {
		input.Tips = *tips
	}

	for i, t := range r.Overtime {
		tier, err := t.toTier()
		if err != nil {
			return nil, fmt.Errorf("overtime tier %d: %w", i+1, err)
		}
		input.Tiers = append(input.Tiers, tier)
	}
	return input, nil
}

func (t OvertimeTierDTO) toTier() (domain.OvertimeTier, error) {
	multiplier, err := decimal.NewFromString(t.Multiplier.String())
	if err != nil {
		return domain.OvertimeTier{}, fmt.Errorf("multiplier: %w", err)
	}
	tier := domain.OvertimeTier{Label: t.Label, Multiplier: multiplier, Kind: domain.AmountKind(t.Kind)}
	if tier.Amount, err = optionalDecimal(t.Amount); err != nil {
		return tier, fmt.Errorf("amount: %w", err)
	}
	if tier.Hours, err = optionalDecimal(t.Hours); err != nil {
		return tier, fmt.Errorf("hours: %w", err)
	}
	if tier.BaseRate, err = optionalDecimal(t.BaseRate); err != nil {
		return tier, fmt.Errorf("base_rate: %w", err)
	}
	return tier, nil
}

func optionalDecimal(n json.Number) (*decimal.Decimal, error) {
	if n == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}
