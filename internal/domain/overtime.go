package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountKind describes what a reported overtime amount represents
type AmountKind string

const (
	// AmountTotal means the amount includes base pay plus the premium
	AmountTotal AmountKind = "total"
	// AmountPremiumOnly means the amount is already the premium portion
	AmountPremiumOnly AmountKind = "premium"
	// AmountUnknown is treated the same as AmountTotal
	AmountUnknown AmountKind = "unknown"
)

// ParseAmountKind converts user input into an AmountKind. An empty string
// maps to AmountUnknown.
func ParseAmountKind(s string) (AmountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total":
		return AmountTotal, nil
	case "premium", "premium_only":
		return AmountPremiumOnly, nil
	case "unknown", "":
		return AmountUnknown, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidAmountKind, s)
	}
}

// IncludesBasePay reports whether the amount still contains straight-time pay
func (k AmountKind) IncludesBasePay() bool {
	return k == AmountTotal || k == AmountUnknown
}

// MultiplierMode selects which overtime multipliers are accepted
type MultiplierMode string

const (
	MultiplierStrict  MultiplierMode = "strict"
	MultiplierLenient MultiplierMode = "lenient"
)

var (
	// TimeAndAHalf is the standard FLSA overtime rate
	TimeAndAHalf = decimal.NewFromFloat(1.5)
	// DoubleTime is the 2.0x tier
	DoubleTime = decimal.NewFromInt(2)
)

// PermittedMultipliers returns the multipliers accepted in strict mode
func PermittedMultipliers() []decimal.Decimal {
	return []decimal.Decimal{TimeAndAHalf, DoubleTime}
}

// ParseMultiplierMode converts user input into a MultiplierMode; empty means strict
func ParseMultiplierMode(s string) (MultiplierMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return MultiplierStrict, nil
	case "lenient":
		return MultiplierLenient, nil
	default:
		return "", fmt.Errorf("multiplier mode must be 'strict' or 'lenient', got %q", s)
	}
}

// Permits reports whether the multiplier produces a premium under this mode
func (m MultiplierMode) Permits(multiplier decimal.Decimal) bool {
	if multiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		return false
	}
	if m == MultiplierLenient {
		return true
	}
	for _, p := range PermittedMultipliers() {
		if multiplier.Equal(p) {
			return true
		}
	}
	return false
}

// Validate checks a multiplier the way the premium calculation screens it.
// Straight time (0, 1] is valid and simply has no premium; zero or negative
// multipliers, and strict-mode multipliers above 1 outside the permitted
// set, return *InvalidMultiplierError.
func (m MultiplierMode) Validate(multiplier decimal.Decimal) error {
	if !multiplier.IsPositive() {
		return &InvalidMultiplierError{Multiplier: multiplier, Mode: m}
	}
	if multiplier.LessThanOrEqual(decimal.NewFromInt(1)) || m.Permits(multiplier) {
		return nil
	}
	return &InvalidMultiplierError{Multiplier: multiplier, Mode: m}
}

// OvertimeReport is one tier of reported overtime pay
type OvertimeReport struct {
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Multiplier decimal.Decimal `yaml:"multiplier" json:"multiplier"`
	Kind       AmountKind      `yaml:"kind" json:"kind"`
}

// NewOvertimeReport builds a validated report. Multipliers the mode rejects
// come back as *InvalidMultiplierError. A zero amount carries no premium, so
// its multiplier is not checked.
func NewOvertimeReport(amount, multiplier decimal.Decimal, kind AmountKind, mode MultiplierMode) (OvertimeReport, error) {
	if amount.IsNegative() {
		return OvertimeReport{}, ErrNegativeAmount
	}
	k, err := ParseAmountKind(string(kind))
	if err != nil {
		return OvertimeReport{}, err
	}
	if amount.IsPositive() {
		if err := mode.Validate(multiplier); err != nil {
			return OvertimeReport{}, err
		}
	}
	return OvertimeReport{Amount: amount, Multiplier: multiplier, Kind: k}, nil
}

// OvertimeTier is the raw input for one multiplier tier. Either the reported
// amount, the hours x base rate pair, or both may be supplied.
type OvertimeTier struct {
	Label      string           `yaml:"label,omitempty" json:"label,omitempty"`
	Multiplier decimal.Decimal  `yaml:"multiplier" json:"multiplier"`
	Amount     *decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	Kind       AmountKind       `yaml:"kind,omitempty" json:"kind,omitempty"`
	Hours      *decimal.Decimal `yaml:"hours,omitempty" json:"hours,omitempty"`
	BaseRate   *decimal.Decimal `yaml:"base_rate,omitempty" json:"base_rate,omitempty"`
}

// Name returns the label or a multiplier-derived name such as "1.5x"
func (t OvertimeTier) Name() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Multiplier.String() + "x"
}

// HasReportedAmount reports whether the reported-amount method was used
func (t OvertimeTier) HasReportedAmount() bool {
	return t.Amount != nil
}

// HasHours reports whether the hours x rate method was used
func (t OvertimeTier) HasHours() bool {
	return t.Hours != nil && t.BaseRate != nil
}

// HasPay reports whether either input method carries a positive amount.
// A tier without pay has no premium whatever its multiplier.
func (t OvertimeTier) HasPay() bool {
	if t.Amount != nil && t.Amount.IsPositive() {
		return true
	}
	return t.HasHours() && t.Hours.Mul(*t.BaseRate).IsPositive()
}
