package calculation

import (
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// PREMIUM CALCULATION ASSUMPTIONS:
//
// 1. Only the premium portion of overtime pay is deductible. For a total of
//    pay at multiplier m, base pay is total/m and the premium is total*(m-1)/m.
// 2. Amounts marked "unknown" are treated as totals; nothing is assumed to
//    have been subtracted yet.
// 3. Results are floored to whole dollars so a deduction is never rounded up.

var one = decimal.NewFromInt(1)

// PremiumCalculator extracts the deductible premium from reported overtime pay
type PremiumCalculator struct {
	Mode domain.MultiplierMode
}

// NewPremiumCalculator creates a calculator for the given multiplier mode
func NewPremiumCalculator(mode domain.MultiplierMode) PremiumCalculator {
	if mode == "" {
		mode = domain.MultiplierStrict
	}
	return PremiumCalculator{Mode: mode}
}

// ComputePremium returns the deductible premium, floored to whole dollars.
//
// A non-positive amount is zero with no error. A multiplier of zero or less,
// or (in strict mode) one outside the permitted set, returns zero together
// with *domain.InvalidMultiplierError so the caller can decide whether to
// block the estimate or treat the tier as having no premium. A multiplier in
// (0, 1] is straight time and yields zero without error.
func (pc PremiumCalculator) ComputePremium(amount, multiplier decimal.Decimal, kind domain.AmountKind) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	applies, err := pc.screenMultiplier(multiplier)
	if !applies {
		return decimal.Zero, err
	}

	switch kind {
	case domain.AmountPremiumOnly:
		return amount.Floor(), nil
	case domain.AmountTotal, domain.AmountUnknown:
		return amount.Mul(multiplier.Sub(one)).Div(multiplier).Floor(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: got %q", domain.ErrInvalidAmountKind, kind)
	}
}

// Report computes the premium of a validated report
func (pc PremiumCalculator) Report(r domain.OvertimeReport) (decimal.Decimal, error) {
	return pc.ComputePremium(r.Amount, r.Multiplier, r.Kind)
}

// HoursPremium computes the premium from hours worked at a base hourly rate:
// floor(hours * rate * (m - 1)). Multipliers are screened the same way as in
// ComputePremium.
func (pc PremiumCalculator) HoursPremium(hours, baseRate, multiplier decimal.Decimal) (decimal.Decimal, error) {
	if hours.IsNegative() || baseRate.IsNegative() {
		return decimal.Zero, domain.ErrNegativeAmount
	}
	basePay := hours.Mul(baseRate)
	if basePay.IsZero() {
		return decimal.Zero, nil
	}
	applies, err := pc.screenMultiplier(multiplier)
	if !applies {
		return decimal.Zero, err
	}
	return basePay.Mul(multiplier.Sub(one)).Floor(), nil
}

// screenMultiplier reports whether a premium exists at this multiplier.
// Straight time (0, 1] has no premium and is not an error.
func (pc PremiumCalculator) screenMultiplier(multiplier decimal.Decimal) (bool, error) {
	mode := pc.Mode
	if mode == "" {
		mode = domain.MultiplierStrict
	}
	switch {
	case multiplier.LessThanOrEqual(decimal.Zero):
		return false, &domain.InvalidMultiplierError{Multiplier: multiplier, Mode: mode}
	case multiplier.LessThanOrEqual(one):
		return false, nil
	case !mode.Permits(multiplier):
		return false, &domain.InvalidMultiplierError{Multiplier: multiplier, Mode: mode}
	}
	return true, nil
}

// ComputePremium is the strict-mode premium calculation
func ComputePremium(amount, multiplier decimal.Decimal, kind domain.AmountKind) (decimal.Decimal, error) {
	return NewPremiumCalculator(domain.MultiplierStrict).ComputePremium(amount, multiplier, kind)
}
