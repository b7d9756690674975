package calculation

import (
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyPhaseout scales maxValue down to zero as income moves through
// [phaseStart, phaseStart+phaseRange]. The result is floored and never
// negative. A non-positive range counts as fully phased out once income
// exceeds phaseStart.
func ApplyPhaseout(income, maxValue, phaseStart, phaseRange decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(phaseStart) {
		return decimal.Max(decimal.Zero, maxValue.Floor())
	}
	if phaseRange.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if income.GreaterThanOrEqual(phaseStart.Add(phaseRange)) {
		return decimal.Zero
	}

	reductionRatio := income.Sub(phaseStart).Div(phaseRange)
	allowed := maxValue.Mul(one.Sub(reductionRatio)).Floor()
	return decimal.Max(decimal.Zero, allowed)
}

// PolicyCeiling applies a phase-out policy to an income
func PolicyCeiling(income decimal.Decimal, p domain.PhaseoutPolicy) decimal.Decimal {
	return ApplyPhaseout(income, p.MaxValue, p.PhaseStart, p.PhaseRange)
}

// CombineDeduction caps a gross amount by the policy ceiling at the given income
func CombineDeduction(gross, income decimal.Decimal, p domain.PhaseoutPolicy) domain.DeductionResult {
	return domain.NewDeductionResult(gross, PolicyCeiling(income, p))
}
