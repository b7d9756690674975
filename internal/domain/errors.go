package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrInvalidAmountKind    = errors.New("amount kind must be 'total', 'premium', or 'unknown'")
	ErrDegeneratePhaseRange = errors.New("phase-out range must be positive")
	ErrNegativeCap          = errors.New("maximum deduction cannot be negative")
	ErrNegativePhaseStart   = errors.New("phase-out start cannot be negative")
	ErrUnknownFilingStatus  = errors.New("unknown filing status")
)

// InvalidMultiplierError reports an overtime multiplier that the active
// multiplier mode does not accept.
type InvalidMultiplierError struct {
	Multiplier decimal.Decimal
	Mode       MultiplierMode
}

func (e *InvalidMultiplierError) Error() string {
	if !e.Multiplier.IsPositive() {
		return fmt.Sprintf("invalid overtime multiplier %s: must be positive", e.Multiplier.String())
	}
	if e.Mode == MultiplierStrict {
		return fmt.Sprintf("invalid overtime multiplier %s: strict mode permits only %s",
			e.Multiplier.String(), joinDecimals(PermittedMultipliers()))
	}
	return fmt.Sprintf("invalid overtime multiplier %s: must be greater than 1", e.Multiplier.String())
}

// ConflictingEstimatesError is returned when the reported-amount and the
// hours x rate entries for the same tier disagree beyond the tolerance.
type ConflictingEstimatesError struct {
	Tier            string
	ReportedPremium decimal.Decimal
	HoursPremium    decimal.Decimal
	Tolerance       decimal.Decimal
}

// Difference returns the absolute gap between the two estimates
func (e *ConflictingEstimatesError) Difference() decimal.Decimal {
	return e.ReportedPremium.Sub(e.HoursPremium).Abs()
}

func (e *ConflictingEstimatesError) Error() string {
	return fmt.Sprintf("overtime tier %s: reported amount gives a premium of $%s but hours x rate gives $%s (difference $%s exceeds $%s); correct one of the entries",
		e.Tier, e.ReportedPremium.StringFixed(0), e.HoursPremium.StringFixed(0),
		e.Difference().StringFixed(2), e.Tolerance.StringFixed(2))
}

// IneligibleError is returned when screening fails and the user has not
// chosen to continue anyway.
type IneligibleError struct {
	Failed []string
}

func (e *IneligibleError) Error() string {
	return "not eligible for the overtime deduction: failed screening on " + strings.Join(e.Failed, ", ")
}

func joinDecimals(values []decimal.Decimal) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.StringFixed(1)
	}
	return strings.Join(parts, ", ")
}
